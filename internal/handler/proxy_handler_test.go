package handler_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/handler"
	"newsdesk/internal/service"
)

type fakeProxy struct {
	imageResult   *service.ProxyResult
	imageErr      error
	faviconResult *service.ProxyResult
	faviconErr    error

	gotImageURL    string
	gotFallbackURL string
}

func (f *fakeProxy) FetchImage(ctx context.Context, imageURL, fallbackURL string) (*service.ProxyResult, error) {
	f.gotImageURL = imageURL
	f.gotFallbackURL = fallbackURL
	return f.imageResult, f.imageErr
}

func (f *fakeProxy) FetchFavicon(ctx context.Context, host string) (*service.ProxyResult, error) {
	return f.faviconResult, f.faviconErr
}

func newProxyRouter(proxy service.ProxyService) *echo.Echo {
	cards := service.NewCardService(service.CardConfig{
		PlaceholderBase: "https://picsum.photos/seed",
		FaviconBase:     "https://favicons.test/s2/favicons",
	})
	e := echo.New()
	handler.NewProxyHandler(proxy, cards).RegisterRoutes(e.Group("/api"))
	return e
}

func encodeImageURL(raw string) string {
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func TestProxyHandler_Image(t *testing.T) {
	proxy := &fakeProxy{imageResult: &service.ProxyResult{Data: []byte("png"), ContentType: "image/png"}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/proxy/image/"+encodeImageURL("https://cdn.test/a.png"), nil)
	newProxyRouter(proxy).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Equal(t, "https://cdn.test/a.png", proxy.gotImageURL)
	require.Empty(t, rec.Header().Get("X-Newsdesk-Fallback"))
}

func TestProxyHandler_Image_FallbackMarked(t *testing.T) {
	proxy := &fakeProxy{imageResult: &service.ProxyResult{Data: []byte("jpg"), ContentType: "image/jpeg", Fallback: true}}

	rec := httptest.NewRecorder()
	target := "/api/proxy/image/" + encodeImageURL("https://cdn.test/a.png") + "?title=Some+story&size=large"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	newProxyRouter(proxy).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "placeholder", rec.Header().Get("X-Newsdesk-Fallback"))
	// The fallback address is the deterministic placeholder for title+size.
	require.Contains(t, proxy.gotFallbackURL, "https://picsum.photos/seed/")
	require.Contains(t, proxy.gotFallbackURL, "/1200/675")
}

func TestProxyHandler_Image_BadEncoding(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/proxy/image/not-base64!", nil)
	newProxyRouter(&fakeProxy{}).ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProxyHandler_Image_RateLimited(t *testing.T) {
	proxy := &fakeProxy{imageErr: service.ErrRateLimited}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/proxy/image/"+encodeImageURL("https://cdn.test/a.png"), nil)
	newProxyRouter(proxy).ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestProxyHandler_Favicon(t *testing.T) {
	proxy := &fakeProxy{faviconResult: &service.ProxyResult{Data: []byte("icon"), ContentType: "image/png"}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/proxy/favicon/example.com", nil)
	newProxyRouter(proxy).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []byte("icon"), rec.Body.Bytes())
}

func TestProxyHandler_Favicon_FailureHidesElement(t *testing.T) {
	proxy := &fakeProxy{faviconErr: service.ErrUpstreamRejected}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/proxy/favicon/example.com", nil)
	newProxyRouter(proxy).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.Bytes())
}
