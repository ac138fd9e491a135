package photo

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/module/auth"
	"github.com/Dawstr8/peek-a-peak/internal/module/user"
)

type routerEnv struct {
	*testEnv
	router  *gin.Engine
	authSvc auth.Service
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := newTestEnv(t)
	if err := env.db.AutoMigrate(&domain.Session{}); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}

	authSvc := auth.NewService(user.NewUserRepository(env.db), auth.NewSessionRepository(env.db), time.Hour)

	r := gin.New()
	NewModule(NewPhotoHandler(env.svc), authSvc).RegisterRoutes(r.Group("/api/v1"))
	return &routerEnv{testEnv: env, router: r, authSvc: authSvc}
}

func (e *routerEnv) loginCookie(t *testing.T, username string) *http.Cookie {
	t.Helper()
	ctx := t.Context()
	if _, err := e.authSvc.Register(ctx, username+"@example.com", username, "longenough"); err != nil {
		t.Fatalf("Register(%q) error = %v", username, err)
	}
	_, session, err := e.authSvc.Login(ctx, username, "longenough")
	if err != nil {
		t.Fatalf("Login(%q) error = %v", username, err)
	}
	return &http.Cookie{Name: auth.SessionCookie, Value: session.ID.String()}
}

// multipartUpload builds a multipart body with an image "file" part and an
// optional JSON "metadata" part.
func multipartUpload(t *testing.T, fileName, contentType, content, metadata string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write file part: %v", err)
	}

	if metadata != "" {
		if err := w.WriteField("metadata", metadata); err != nil {
			t.Fatalf("write metadata: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func postUpload(t *testing.T, r *gin.Engine, body *bytes.Buffer, contentType string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos", body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPhotoHandler_Upload(t *testing.T) {
	env := newRouterEnv(t)
	cookie := env.loginCookie(t, "wanda")

	metadata := `{"capturedAt":"2024-07-14T09:30:00Z","latitude":49.1795,"longitude":20.0881,"altitude":2480.5}`
	body, contentType := multipartUpload(t, "summit.jpg", "image/jpeg", "fake image", metadata)

	w := postUpload(t, env.router, body, contentType, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data domain.SummitPhoto `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Data.Latitude == nil || *resp.Data.Latitude != 49.1795 {
		t.Fatalf("latitude = %v, want 49.1795", resp.Data.Latitude)
	}
	if resp.Data.CapturedAt == nil {
		t.Fatal("capturedAt not persisted")
	}
	if resp.Data.FileName == "summit.jpg" {
		t.Fatal("file name must be server-generated")
	}
}

func TestPhotoHandler_Upload_RequiresAuth(t *testing.T) {
	env := newRouterEnv(t)

	body, contentType := multipartUpload(t, "summit.jpg", "image/jpeg", "x", "")
	w := postUpload(t, env.router, body, contentType)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestPhotoHandler_Upload_MissingFilePart(t *testing.T) {
	env := newRouterEnv(t)
	cookie := env.loginCookie(t, "wanda")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("metadata", "{}"); err != nil {
		t.Fatalf("write metadata: %v", err)
	}
	w.Close()

	resp := postUpload(t, env.router, &buf, w.FormDataContentType(), cookie)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestPhotoHandler_Upload_BadMetadata(t *testing.T) {
	env := newRouterEnv(t)
	cookie := env.loginCookie(t, "wanda")

	body, contentType := multipartUpload(t, "summit.jpg", "image/jpeg", "x", "{not json")
	w := postUpload(t, env.router, body, contentType, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPhotoHandler_Upload_NonImage(t *testing.T) {
	env := newRouterEnv(t)
	cookie := env.loginCookie(t, "wanda")

	body, contentType := multipartUpload(t, "doc.pdf", "application/pdf", "%PDF", "")
	w := postUpload(t, env.router, body, contentType, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPhotoHandler_GetAndDelete(t *testing.T) {
	env := newRouterEnv(t)
	cookie := env.loginCookie(t, "wanda")

	body, contentType := multipartUpload(t, "summit.jpg", "image/jpeg", "x", "")
	w := postUpload(t, env.router, body, contentType, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status = %d", w.Code)
	}
	var resp struct {
		Data domain.SummitPhoto `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	photoID := resp.Data.ID.String()

	// Anyone can view a public user's photo.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/photos/"+photoID, nil)
	getW := httptest.NewRecorder()
	env.router.ServeHTTP(getW, req)
	if getW.Code != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", getW.Code, getW.Body.String())
	}

	// Delete requires authentication.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/photos/"+photoID, nil)
	delW := httptest.NewRecorder()
	env.router.ServeHTTP(delW, req)
	if delW.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated delete status = %d, want 401", delW.Code)
	}

	// The owner deletes.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/photos/"+photoID, nil)
	req.AddCookie(cookie)
	delW = httptest.NewRecorder()
	env.router.ServeHTTP(delW, req)
	if delW.Code != http.StatusOK {
		t.Fatalf("owner delete status = %d, body = %s", delW.Code, delW.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/photos/"+photoID, nil)
	getW = httptest.NewRecorder()
	env.router.ServeHTTP(getW, req)
	if getW.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", getW.Code)
	}
}

func TestPhotoHandler_Get_InvalidID(t *testing.T) {
	env := newRouterEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/photos/not-a-uuid", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
