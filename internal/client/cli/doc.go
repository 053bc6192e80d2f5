// Package cli is the interactive eLegacy terminal client.
//
// App wires the local store, the session gate and the API services, then
// serves a read-eval-print loop. Startup shows a splash while the gate reads
// the stored session; without one only register, login, about and help are
// available. Signed in, the user browses, searches, sorts and uploads
// documents, opens one in the action menu (view, edit, share, delete with
// confirmation), and reaches the profile, access, notification and will
// screens.
//
// Errors from commands are printed as alerts and never end the loop.
package cli
