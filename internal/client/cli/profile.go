package cli

import "context"

func (a *App) Profile(ctx context.Context) error {
	p, err := a.profiles.Load(ctx)
	if err != nil {
		return a.alert("Error", err)
	}
	a.say("Name:    %s", p.Name)
	a.say("Email:   %s", p.Email)
	a.say("Phone:   %s", p.Phone)
	a.say("Address: %s", p.Address)
	if p.ProfileImage != "" {
		a.say("Image:   %s", p.ProfileImage)
	}
	return nil
}

// EditProfile walks through the profile fields; an empty answer keeps the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	p, err := a.profiles.Load(ctx)
	if err != nil {
		return a.alert("Error", err)
	}

	fields := []struct {
		label string
		dst   *string
	}{
		{"Name", &p.Name},
		{"Email", &p.Email},
		{"Phone", &p.Phone},
		{"Address", &p.Address},
		{"Profile image (file path)", &p.ProfileImage},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.label+" ["+*f.dst+"]", a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = v
		}
	}

	if err := a.profiles.Save(ctx, p); err != nil {
		return a.alert("Error", err)
	}
	a.say("Profile saved successfully!")
	return nil
}
