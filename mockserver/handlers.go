package mockserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/fetchkit/auth/authctx"
	apperrors "github.com/kbukum/fetchkit/errors"
	"github.com/kbukum/fetchkit/server"
	"github.com/kbukum/fetchkit/validation"
)

const (
	undefined      = "undefined"
	maxClaimLength = 128
)

// PostRequest is the body of POST /posts.
type PostRequest struct {
	Name    string  `json:"name" validate:"required,min=1"`
	Content *string `json:"content,omitempty"`
}

// respond writes body as JSON, adding sub, role and exp when the request
// was authenticated.
func respond(c *gin.Context, status int, body gin.H) {
	if claims, ok := authctx.From[*Claims](c.Request.Context()); ok {
		body["sub"] = claims.Subject
		body["role"] = claims.Role
		body["exp"] = claims.Exp()
	}
	c.JSON(status, body)
}

func (m *MockServer) hello(c *gin.Context) {
	c.String(http.StatusOK, "hello mock server")
}

func (m *MockServer) listPosts(c *gin.Context) {
	body := gin.H{}
	for _, key := range []string{"name", "content"} {
		if v, ok := c.GetQuery(key); ok {
			body[key] = v
		}
	}
	respond(c, http.StatusOK, body)
}

func (m *MockServer) createPost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid JSON body").WithCause(err))
		return
	}
	if err := validation.Validate(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	content := "none"
	if req.Content != nil {
		content = *req.Content
	}
	respond(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("name : %s content: %s", req.Name, content),
	})
}

func (m *MockServer) upload(c *gin.Context) {
	fh, err := c.FormFile("files")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			m.log.Debug("upload: read form", map[string]interface{}{"error": err.Error()})
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}
	respond(c, http.StatusOK, gin.H{
		"name": fh.Filename,
		"size": fh.Size,
		"type": fh.Header.Get("Content-Type"),
	})
}

func (m *MockServer) postForm(c *gin.Context) {
	name, hasName := c.GetPostForm("name")
	content, hasContent := c.GetPostForm("content")
	if !hasName && !hasContent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not valid body"})
		return
	}
	if !hasName {
		name = undefined
	}
	if !hasContent {
		content = undefined
	}
	respond(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("name is %s, content is %s", name, content),
	})
}

func (m *MockServer) previewPDF(c *gin.Context) {
	c.Data(http.StatusOK, "application/pdf", samplePDF)
}

func (m *MockServer) sign(c *gin.Context) {
	var req SignRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		server.RespondWithError(c, apperrors.Validation("invalid JSON body").WithCause(err))
		return
	}
	err := validation.New().
		MaxLength("sub", req.Sub, maxClaimLength).
		MaxLength("role", req.Role, maxClaimLength).
		Validate()
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	token, claims, err := m.Token(req.Sub, req.Role)
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusCreated, SignResponse{
		Token: token,
		Sub:   claims.Subject,
		Role:  claims.Role,
		Exp:   claims.Exp(),
	})
}
