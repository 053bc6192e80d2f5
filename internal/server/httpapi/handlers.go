package httpapi

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/elegacy/internal/common"
	"github.com/dmitrijs2005/elegacy/internal/server/models"
	"github.com/dmitrijs2005/elegacy/internal/server/services"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type documentResponse struct {
	ID           string `json:"_id"`
	Email        string `json:"email"`
	Title        string `json:"title"`
	FileName     string `json:"filename"`
	PropertyName string `json:"property_name"`
	Address      string `json:"address"`
	Type         string `json:"type"`
	FileURL      string `json:"fileUrl"`
	UploadDate   string `json:"upload_date"`
}

// updateRequest takes only the editable keys; anything else in the body,
// such as the id the client echoes back, is ignored.
type updateRequest struct {
	Title        *string `json:"title"`
	PropertyName *string `json:"property_name"`
	Address      *string `json:"address"`
	Type         *string `json:"type"`
}

type inviteRequest struct {
	Sender        string `json:"sender"`
	Recipient     string `json:"recipient"`
	DocumentID    string `json:"documentId"`
	DocumentTitle string `json:"documentTitle"`
}

type inviteResponse struct {
	ID            string `json:"_id"`
	Sender        string `json:"sender"`
	Recipient     string `json:"recipient"`
	DocumentID    string `json:"documentId"`
	DocumentTitle string `json:"documentTitle"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// internal records err for the request log and answers 500.
func internal(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	message(c, http.StatusInternalServerError, msg)
}

func (s *HTTPServer) health(c *gin.Context) {
	message(c, http.StatusOK, "eLegacy Backend Running")
}

func (s *HTTPServer) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		message(c, http.StatusCreated, "User registered successfully")
	case errors.Is(err, services.ErrMissingCredentials):
		message(c, http.StatusBadRequest, "Email and password are required")
	case errors.Is(err, common.ErrorAlreadyExists):
		message(c, http.StatusBadRequest, "User already exists")
	default:
		internal(c, err, "Registration failed")
	}
}

func (s *HTTPServer) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, loginResponse{
			Token: res.Token,
			User:  userResponse{ID: res.User.ID, Name: res.User.Name, Email: res.User.Email},
		})
	case errors.Is(err, services.ErrMissingCredentials), errors.Is(err, common.ErrorUnauthorized):
		message(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		internal(c, err, "Login failed")
	}
}

func (s *HTTPServer) upload(c *gin.Context) {
	in := services.UploadInput{
		Email:        c.PostForm("email"),
		Title:        c.PostForm("title"),
		PropertyName: c.PostForm("propertyName"),
		Address:      c.PostForm("address"),
		Type:         c.PostForm("type"),
	}
	if in.Email == "" {
		message(c, http.StatusBadRequest, "Missing user email")
		return
	}
	if o := owner(c); o != "" && o != in.Email {
		message(c, http.StatusForbidden, "Forbidden")
		return
	}

	fh, err := c.FormFile("document")
	if err != nil {
		message(c, http.StatusBadRequest, "Missing file")
		return
	}
	f, err := fh.Open()
	if err != nil {
		internal(c, err, "Upload failed")
		return
	}
	defer f.Close()
	if in.Content, err = io.ReadAll(f); err != nil {
		internal(c, err, "Upload failed")
		return
	}
	in.FileName = fh.Filename

	id, err := s.docs.Upload(c.Request.Context(), in)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "Document uploaded and encrypted successfully", "document_id": id})
	case errors.Is(err, services.ErrMissingEmail):
		message(c, http.StatusBadRequest, "Missing user email")
	case errors.Is(err, services.ErrMissingFile):
		message(c, http.StatusBadRequest, "Missing file")
	default:
		internal(c, err, "Upload failed")
	}
}

func (s *HTTPServer) listDocuments(c *gin.Context) {
	email := c.Param("email")
	if o := owner(c); o != "" && o != email {
		message(c, http.StatusForbidden, "Forbidden")
		return
	}

	docs, err := s.docs.List(c.Request.Context(), email)
	if err != nil {
		internal(c, err, "Failed to fetch documents")
		return
	}
	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	c.JSON(http.StatusOK, gin.H{"documents": out})
}

func (s *HTTPServer) updateDocument(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	upd := models.DocumentUpdate{Title: req.Title, PropertyName: req.PropertyName, Address: req.Address, Type: req.Type}

	err := s.docs.Update(c.Request.Context(), owner(c), c.Param("id"), upd)
	switch {
	case err == nil:
		message(c, http.StatusOK, "Document updated successfully")
	case errors.Is(err, common.ErrorNotFound):
		message(c, http.StatusNotFound, "Document not found or no changes made")
	default:
		internal(c, err, "Failed to update document")
	}
}

func (s *HTTPServer) deleteDocument(c *gin.Context) {
	err := s.docs.Delete(c.Request.Context(), owner(c), c.Param("id"))
	switch {
	case err == nil:
		message(c, http.StatusOK, "Document deleted successfully")
	case errors.Is(err, common.ErrorNotFound):
		message(c, http.StatusNotFound, "Document not found")
	default:
		internal(c, err, "Failed to delete document")
	}
}

func (s *HTTPServer) sendInvite(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "Recipient email and document ID are required")
		return
	}
	if req.Sender == "" {
		req.Sender = owner(c)
	}

	_, err := s.invites.Send(c.Request.Context(), services.InviteInput{
		Sender:        req.Sender,
		Recipient:     req.Recipient,
		DocumentID:    req.DocumentID,
		DocumentTitle: req.DocumentTitle,
	})
	switch {
	case err == nil:
		message(c, http.StatusOK, "Invitation sent successfully.")
	case errors.Is(err, services.ErrInviteFields):
		message(c, http.StatusBadRequest, "Recipient email and document ID are required")
	default:
		internal(c, err, "Failed to send invitation")
	}
}

func (s *HTTPServer) listInvites(c *gin.Context) {
	email := c.Param("email")
	if o := owner(c); o != "" && o != email {
		message(c, http.StatusForbidden, "Forbidden")
		return
	}

	invs, err := s.invites.Pending(c.Request.Context(), email)
	if err != nil {
		internal(c, err, "Failed to fetch invitations")
		return
	}
	out := make([]inviteResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, inviteResponse{
			ID:            inv.ID,
			Sender:        inv.Sender,
			Recipient:     inv.Recipient,
			DocumentID:    inv.DocumentID,
			DocumentTitle: inv.DocumentTitle,
			Status:        inv.Status,
			CreatedAt:     inv.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"invites": out})
}

func (s *HTTPServer) serveFile(c *gin.Context) {
	doc, err := s.docs.File(c.Request.Context(), owner(c), c.Param("id"), c.Param("filename"))
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorNotFound):
		message(c, http.StatusNotFound, "Document not found")
		return
	default:
		internal(c, err, "Failed to read document")
		return
	}

	ct := mime.TypeByExtension(filepath.Ext(doc.FileName))
	if ct == "" {
		ct = http.DetectContentType(doc.Content)
	}
	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": doc.FileName}))
	c.Data(http.StatusOK, ct, doc.Content)
}

func toDocumentResponse(d models.Document) documentResponse {
	return documentResponse{
		ID:           d.ID,
		Email:        d.Email,
		Title:        d.Title,
		FileName:     d.FileName,
		PropertyName: d.PropertyName,
		Address:      d.Address,
		Type:         d.Type,
		FileURL:      "/uploads/" + url.PathEscape(d.ID) + "/" + url.PathEscape(d.FileName),
		UploadDate:   d.UploadDate.UTC().Format(time.RFC3339),
	}
}
