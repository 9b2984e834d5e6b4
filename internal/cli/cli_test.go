package cli_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"easein-studio-backend/internal/cli"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFrameCmd(t *testing.T) {
	t.Run("top of the page shows the beam", func(t *testing.T) {
		out, err := run(t, "frame", "--scroll", "0", "-o", "json")
		require.NoError(t, err)

		var got struct {
			Frame struct {
				Mode     string
				Progress float64
			} `json:"frame"`
			CTAGhostY float64 `json:"cta_ghost_y"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "beam", got.Frame.Mode)
		assert.Zero(t, got.Frame.Progress)
		assert.Zero(t, got.CTAGhostY)
	})

	t.Run("deep scroll switches to the trail", func(t *testing.T) {
		out, err := run(t, "frame", "--scroll", "2050", "--doc-height", "5000", "--height", "900")
		require.NoError(t, err)

		var got struct {
			Frame struct {
				Mode     string  `yaml:"mode"`
				Progress float64 `yaml:"progress"`
			} `yaml:"frame"`
			CTAGhostY float64 `yaml:"cta_ghost_y"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		assert.Equal(t, "trail", got.Frame.Mode)
		assert.InDelta(t, 0.5, got.Frame.Progress, 1e-9)
		assert.InDelta(t, 205, got.CTAGhostY, 1e-9)
	})

	t.Run("unknown output format", func(t *testing.T) {
		_, err := run(t, "frame", "-o", "xml")
		assert.ErrorContains(t, err, `unknown output format "xml"`)
	})
}

func TestCarouselCmd(t *testing.T) {
	type step struct {
		Index      *int     `json:"index"`
		ScrollLeft *float64 `json:"scroll_left"`
		Roles      *struct {
			Active int
			Next   int
			Back   int
		} `json:"roles"`
	}
	decode := func(t *testing.T, out string) []step {
		var steps []step
		require.NoError(t, json.Unmarshal([]byte(out), &steps))
		return steps
	}

	t.Run("loop snaps back onto the originals", func(t *testing.T) {
		out, err := run(t, "carousel", "--kind", "loop", "--items", "3", "--steps", "4", "-o", "json")
		require.NoError(t, err)

		var idx []int
		for _, s := range decode(t, out) {
			idx = append(idx, *s.Index)
		}
		assert.Equal(t, []int{1, 2, 0, 1}, idx)
	})

	t.Run("strip wraps near the end", func(t *testing.T) {
		out, err := run(t, "carousel", "--kind", "strip", "--steps", "5",
			"--width", "768", "--scroll-width", "1560", "-o", "json")
		require.NoError(t, err)

		var left []float64
		for _, s := range decode(t, out) {
			left = append(left, *s.ScrollLeft)
		}
		assert.Equal(t, []float64{260, 520, 780, 792, 0}, left)
	})

	t.Run("reel rotates roles", func(t *testing.T) {
		out, err := run(t, "carousel", "--kind", "reel", "--items", "3", "--steps", "3", "-o", "json")
		require.NoError(t, err)

		steps := decode(t, out)
		require.Len(t, steps, 3)
		assert.Equal(t, 1, steps[0].Roles.Active)
		assert.Equal(t, 2, steps[0].Roles.Next)
		assert.Equal(t, 0, steps[0].Roles.Back)
		assert.Equal(t, 0, steps[2].Roles.Active)
	})

	t.Run("reel needs two cards", func(t *testing.T) {
		_, err := run(t, "carousel", "--kind", "reel", "--items", "1")
		assert.Error(t, err)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := run(t, "carousel", "--kind", "wheel")
		assert.ErrorContains(t, err, `unknown carousel kind "wheel"`)
	})
}

func TestPagesCmd(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "pages.yaml")

	t.Run("lists the built-in profiles", func(t *testing.T) {
		out, err := run(t, "pages", "--config", missing)
		require.NoError(t, err)
		assert.Equal(t, "about\tok\ncontact\tok\nhome\tok\nportfolio\tok\n", out)
	})

	t.Run("shows one profile", func(t *testing.T) {
		out, err := run(t, "pages", "--config", missing, "--show", "contact", "-o", "json")
		require.NoError(t, err)
		assert.Contains(t, out, `"endpoint": "/contact_api.php"`)
	})

	t.Run("rejects an invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pages.yaml")
		require.NoError(t, os.WriteFile(path, []byte("pages:\n  contact:\n    reel:\n      cards: 1\n"), 0o644))

		_, err := run(t, "pages", "--config", path)
		assert.Error(t, err)
	})

	t.Run("unknown page", func(t *testing.T) {
		_, err := run(t, "pages", "--config", missing, "--show", "blog")
		assert.ErrorContains(t, err, `page "blog" not found`)
	})
}

func TestSubmitCmd(t *testing.T) {
	t.Run("posts every field and the file", func(t *testing.T) {
		var got map[string]string
		var filename string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			got = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				got[k] = v[0]
			}
			if fh, ok := r.MultipartForm.File["reference_upload"]; ok {
				filename = fh[0].Filename
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"message":"Your message has been sent successfully. We will get back to you soon."}`))
		}))
		defer srv.Close()

		upload := filepath.Join(t.TempDir(), "brief.txt")
		require.NoError(t, os.WriteFile(upload, []byte("thirty seconds"), 0o644))

		out, err := run(t, "submit", "--endpoint", srv.URL,
			"--name", "Ada", "--email", "ada@example.com", "--phone", "123",
			"--video_type", "Promo", "--project_details", "Launch", "--file", upload)
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"name": "Ada", "email": "ada@example.com", "phone": "123",
			"video_type": "Promo", "project_details": "Launch",
		}, got)
		assert.Equal(t, "brief.txt", filename)
		assert.Contains(t, out, "success: true")
	})

	t.Run("fails on a rejected submission", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"success":false,"message":"Validation error.","errors":["Name is required."]}`))
		}))
		defer srv.Close()

		out, err := run(t, "submit", "--endpoint", srv.URL)
		assert.ErrorContains(t, err, "relay answered 422: Validation error.")
		assert.Contains(t, out, "Name is required.")
	})
}
