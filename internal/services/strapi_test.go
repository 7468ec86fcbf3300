package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/playdeck/internal/models"
	"github.com/desertthunder/playdeck/internal/shared"
	tu "github.com/desertthunder/playdeck/internal/testing"
	"github.com/google/go-cmp/cmp"
)

const testToken = "test-token"

func newTestStrapi(t *testing.T, handler http.HandlerFunc) (*StrapiService, *bytes.Buffer) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var buf bytes.Buffer
	cfg := shared.CMSConfig{
		BaseURL:        server.URL,
		APIPath:        "/api",
		Token:          testToken,
		TimeoutSeconds: 5,
		PageSize:       25,
	}
	return NewStrapiService(cfg, log.NewWithOptions(&buf, log.Options{})), &buf
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func requireRequestError(t *testing.T, err error) *RequestError {
	t.Helper()
	reqErr, ok := AsRequestError(err)
	if !ok {
		t.Fatalf("expected *RequestError, got %T: %v", err, err)
	}
	return reqErr
}

func TestStrapiService(t *testing.T) {
	t.Run("NewStrapiService", func(t *testing.T) {
		srv := NewStrapiService(shared.CMSConfig{BaseURL: "https://cms.example.com/", APIPath: "api", Token: "x"}, nil)

		if srv.endpoint != "https://cms.example.com/api" {
			t.Errorf("unexpected endpoint %s", srv.endpoint)
		}
		if srv.pageSize != 25 {
			t.Errorf("expected default page size 25, got %d", srv.pageSize)
		}
		if srv.httpClient.Timeout != shared.DefaultConfig().CMS.Timeout() {
			t.Errorf("unexpected timeout %v", srv.httpClient.Timeout)
		}
		if srv.Name() != "Strapi" {
			t.Errorf("expected name 'Strapi', got %s", srv.Name())
		}
	})

	t.Run("GetPlaylists", func(t *testing.T) {
		t.Run("Decodes Envelope", func(t *testing.T) {
			srv, _ := newTestStrapi(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/playlists" {
					t.Errorf("expected path /api/playlists, got %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer "+testToken {
					t.Errorf("expected bearer token, got %q", got)
				}
				q := r.URL.Query()
				if q.Get("populate[Components][populate][*]") != "true" {
					t.Errorf("expected wildcard populate, got %v", q)
				}
				if q.Get("populate[Components][populate][video][populate]") != "*" {
					t.Errorf("expected video populate, got %v", q)
				}
				if q.Get("populate[Components][populate][image_source][populate][1]") != "data.attributes" {
					t.Errorf("expected image_source populate, got %v", q)
				}
				writeJSON(w, http.StatusOK, `{"data":[
					{"id":1,"attributes":{"title":"Week 1","Components":[
						{"id":9,"__component":"playlist-components.section-card","title":"Intro"}
					]}},
					{"id":2,"attributes":{"title":"Week 2","Components":[]}}
				],"meta":{}}`)
			})

			playlists, err := srv.GetPlaylists(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(playlists) != 2 {
				t.Fatalf("expected 2 playlists, got %d", len(playlists))
			}
			if playlists[0].ID != "1" || playlists[0].Title() != "Week 1" {
				t.Errorf("unexpected first playlist %+v", playlists[0])
			}
			if got := playlists[0].Attributes.Components; len(got) != 1 || got[0].Kind() != "section-card" {
				t.Errorf("unexpected components %+v", got)
			}
		})

		t.Run("Invalid Envelope", func(t *testing.T) {
			tc := []string{`{"items":[]}`, `[]`, `{"data":{"id":1}}`, `not json`, `null`}
			for _, body := range tc {
				srv, _ := newTestStrapi(t, func(w http.ResponseWriter, r *http.Request) {
					writeJSON(w, http.StatusOK, body)
				})

				_, err := srv.GetPlaylists(context.Background())
				reqErr := requireRequestError(t, err)
				if reqErr.Message != "Invalid response format from server" || reqErr.StatusCode != 500 {
					t.Errorf("body %s: unexpected error %+v", body, reqErr)
				}
			}
		})

		t.Run("Status Messages", func(t *testing.T) {
			tc := []struct {
				name    string
				status  int
				body    string
				message string
			}{
				{"server error", 500, `{}`, "Internal server error while fetching playlists"},
				{"not found", 404, ``, "Playlist endpoint not found"},
				{"other status", 418, `{}`, "Failed to fetch playlists"},
				{"cms message", 400, `{"error":{"status":400,"message":"Invalid populate"}}`, "Invalid populate"},
				{"cms message wins over status", 500, `{"error":{"message":"Boom"}}`, "Boom"},
			}

			for _, tt := range tc {
				t.Run(tt.name, func(t *testing.T) {
					srv, _ := newTestStrapi(t, func(w http.ResponseWriter, r *http.Request) {
						writeJSON(w, tt.status, tt.body)
					})

					_, err := srv.GetPlaylists(context.Background())
					reqErr := requireRequestError(t, err)
					if reqErr.Message != tt.message {
						t.Errorf("expected message %q, got %q", tt.message, reqErr.Message)
					}
					if reqErr.StatusCode != tt.status {
						t.Errorf("expected status %d, got %d", tt.status, reqErr.StatusCode)
					}
					if !strings.HasSuffix(reqErr.URL, "/api/playlists?"+PopulateQuery().Encode()) {
						t.Errorf("unexpected URL %s", reqErr.URL)
					}
					if !errors.Is(err, shared.ErrAPIRequest) {
						t.Error("expected error to match ErrAPIRequest")
					}
				})
			}
		})

		t.Run("Unauthorized", func(t *testing.T) {
			srv, buf := newTestStrapi(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusUnauthorized, `{"error":{"status":401,"message":"Missing or invalid credentials"}}`)
			})

			_, err := srv.GetPlaylists(context.Background())
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
			if reqErr := requireRequestError(t, err); reqErr.Message != "Missing or invalid credentials" {
				t.Errorf("unexpected message %q", reqErr.Message)
			}
			if !strings.Contains(buf.String(), "authentication failed") {
				t.Errorf("expected authentication failure to be logged, got %q", buf.String())
			}
		})

		t.Run("Transport Failure", func(t *testing.T) {
			srv := NewStrapiService(shared.CMSConfig{BaseURL: "http://cms.invalid", APIPath: "api", Token: "x"}, nil)
			srv.httpClient = &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}

			_, err := srv.GetPlaylists(context.Background())
			reqErr := requireRequestError(t, err)
			if reqErr.StatusCode != 500 || reqErr.Message != "Failed to fetch playlists" {
				t.Errorf("unexpected error %+v", reqErr)
			}
			if reqErr.Err == nil {
				t.Error("expected transport error to be kept")
			}
		})

		t.Run("Canceled Context", func(t *testing.T) {
			srv, _ := newTestStrapi(t, func(w http.ResponseWriter, r *http.Request) {
				t.Error("request should not be sent")
			})

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := srv.GetPlaylists(ctx)
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		})
	})

	t.Run("GetPlaylist", func(t *testing.T) {
		t.Run("Decodes Single Envelope", func(t *testing.T) {
			srv, _ := newTestStrapi(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/playlists/7" {
					t.Errorf("expected path /api/playlists/7, got %s", r.URL.Path)
				}
				writeJSON(w, http.StatusOK, `{"data":{"id":7,"attributes":{"title":"Seven","Components":null}}}`)
			})

			p, err := srv.GetPlaylist(context.Background(), "7")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if p.ID != "7" || p.Title() != "Seven" || p.Attributes.Components != nil {
				t.Errorf("unexpected playlist %+v", p)
			}
		})

		t.Run("Not Found", func(t *testing.T) {
			srv, _ := newTestStrapi(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusNotFound, `{"data":null,"error":{"status":404,"name":"NotFoundError","message":"Not Found"}}`)
			})

			_, err := srv.GetPlaylist(context.Background(), "99")
			if !errors.Is(err, shared.ErrPlaylistNotFound) {
				t.Errorf("expected ErrPlaylistNotFound, got %v", err)
			}
		})

		t.Run("Missing ID", func(t *testing.T) {
			srv := NewStrapiService(shared.CMSConfig{BaseURL: "http://cms.invalid", Token: "x"}, nil)
			if _, err := srv.GetPlaylist(context.Background(), " "); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})

	t.Run("GetVideos", func(t *testing.T) {
		t.Run("Maps Upload Files", func(t *testing.T) {
			srv, _ := newTestStrapi(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/upload/files" {
					t.Errorf("expected path /api/upload/files, got %s", r.URL.Path)
				}
				q := r.URL.Query()
				want := map[string]string{
					"filters[mime][$contains]": "video",
					"pagination[page]":         "1",
					"pagination[pageSize]":     "25",
					"sort":                     "createdAt:desc",
				}
				for k, v := range want {
					if q.Get(k) != v {
						t.Errorf("expected %s=%s, got %q", k, v, q.Get(k))
					}
				}
				writeJSON(w, http.StatusOK, `[
					{"id":3,"name":"intro.mp4","url":"/uploads/intro.mp4","mime":"video/mp4"},
					{"id":4,"name":"remote.mp4","url":"https://cdn.example.com/remote.mp4"}
				]`)
			})

			videos, err := srv.GetVideos(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			want := []models.Video{
				{ID: "3", Title: "intro.mp4", Duration: "0:00", VideoURL: srv.baseURL + "/uploads/intro.mp4"},
				{ID: "4", Title: "remote.mp4", Duration: "0:00", VideoURL: "https://cdn.example.com/remote.mp4"},
			}
			if diff := cmp.Diff(want, videos); diff != "" {
				t.Errorf("videos mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("Unexpected Shape", func(t *testing.T) {
			srv, _ := newTestStrapi(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"data":[]}`)
			})

			_, err := srv.GetVideos(context.Background())
			if reqErr := requireRequestError(t, err); reqErr.Message != "Invalid response format from server" {
				t.Errorf("unexpected message %q", reqErr.Message)
			}
		})

		t.Run("Failure Message", func(t *testing.T) {
			srv, _ := newTestStrapi(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusForbidden, `{}`)
			})

			_, err := srv.GetVideos(context.Background())
			reqErr := requireRequestError(t, err)
			if reqErr.Message != "Failed to fetch videos" || reqErr.StatusCode != http.StatusForbidden {
				t.Errorf("unexpected error %+v", reqErr)
			}
		})
	})

	t.Run("CreatePlaylist", func(t *testing.T) {
		t.Run("Posts Video Components In Order", func(t *testing.T) {
			srv, _ := newTestStrapi(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/playlists" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}

				var body map[string]any
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				want := map[string]any{
					"data": map[string]any{
						"title": "Week 1",
						"Components": []any{
							map[string]any{
								"__component": "playlist-components.video-component",
								"video":       map[string]any{"connect": []any{map[string]any{"id": float64(3)}}},
							},
							map[string]any{
								"__component": "playlist-components.video-component",
								"video":       map[string]any{"connect": []any{map[string]any{"id": "abc"}}},
							},
						},
					},
				}
				if diff := cmp.Diff(want, body); diff != "" {
					t.Errorf("body mismatch (-want +got):\n%s", diff)
				}

				writeJSON(w, http.StatusOK, `{"data":{"id":42,"attributes":{"title":"Week 1"}}}`)
			})

			created, err := srv.CreatePlaylist(context.Background(), "Week 1", []models.ID{"3", "abc"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			want := &models.Created{ID: "42", Title: "Week 1", Components: 2}
			if diff := cmp.Diff(want, created); diff != "" {
				t.Errorf("created mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("Failure Message", func(t *testing.T) {
			srv, _ := newTestStrapi(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusBadRequest, `{}`)
			})

			_, err := srv.CreatePlaylist(context.Background(), "x", []models.ID{"1"})
			if reqErr := requireRequestError(t, err); reqErr.Message != "Failed to create playlist" {
				t.Errorf("unexpected message %q", reqErr.Message)
			}
		})
	})
}

func TestNewService(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{})

	if _, ok := NewService(shared.CMSConfig{BaseURL: "http://cms"}, logger).(*SampleService); !ok {
		t.Error("expected sample service without a token")
	}
	if !strings.Contains(buf.String(), shared.EnvToken) {
		t.Errorf("expected offline mode to be logged, got %q", buf.String())
	}

	if _, ok := NewService(shared.CMSConfig{BaseURL: "http://cms", Token: "t"}, logger).(*StrapiService); !ok {
		t.Error("expected strapi service with a token")
	}
}
