package view

import (
	"strings"
	"testing"
	"time"

	"github.com/codewithraj/blog/internal/pkg/jwt"
)

func TestRenderIndex(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var sb strings.Builder
	err = r.Render(&sb, "index.html", Data{
		Title:   "Home",
		IsAdmin: true,
		Flashes: []Flash{{Category: "success", Message: "Welcome, your account has been created."}},
		Content: struct {
			Posts []struct {
				ID         int64
				Title      string
				Subtitle   string
				AuthorName string
				CreatedAt  time.Time
			}
		}{
			Posts: []struct {
				ID         int64
				Title      string
				Subtitle   string
				AuthorName string
				CreatedAt  time.Time
			}{{
				ID:         7,
				Title:      "Hello World",
				Subtitle:   "First post",
				AuthorName: "Raj",
				CreatedAt:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			}},
		},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	html := sb.String()
	for _, want := range []string{
		"Hello World",
		"June 01, 2025",
		"alert-success",
		"Welcome, your account has been created.",
		"/new-post",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered page should contain %q", want)
		}
	}
}

func TestRenderShowsSessionNav(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var anon strings.Builder
	if err := r.Render(&anon, "about.html", Data{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(anon.String(), "/login") || strings.Contains(anon.String(), "/logout") {
		t.Error("anonymous visitors should see login, not logout")
	}

	var signed strings.Builder
	err = r.Render(&signed, "about.html", Data{User: &jwt.Claims{UserID: 42, FullName: "A Reader"}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(signed.String(), "/logout") {
		t.Error("signed-in visitors should see logout")
	}
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var sb strings.Builder
	if err := r.Render(&sb, "missing.html", Data{}); err == nil {
		t.Error("unknown page should return an error")
	}
}

func TestAllPagesParse(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if len(r.pages) == 0 {
		t.Fatal("no pages parsed")
	}
	if _, ok := r.pages["base.html"]; ok {
		t.Error("base layout should not be registered as a page")
	}
}
