package validation

import (
	"testing"

	"inotebook-server/internal/domain"
)

func TestValidate_CreateNote(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		req        *domain.CreateNoteRequest
		wantFields []string
	}{
		{
			name:       "all fields valid",
			req:        &domain.CreateNoteRequest{Title: "Groceries", Description: "Buy milk", Tag: "home"},
			wantFields: nil,
		},
		{
			name:       "exactly three characters",
			req:        &domain.CreateNoteRequest{Title: "abc", Description: "def", Tag: "ghi"},
			wantFields: nil,
		},
		{
			name:       "short title",
			req:        &domain.CreateNoteRequest{Title: "ab", Description: "desc", Tag: "tag"},
			wantFields: []string{"title"},
		},
		{
			name:       "short description and tag",
			req:        &domain.CreateNoteRequest{Title: "title", Description: "d", Tag: ""},
			wantFields: []string{"description", "tag"},
		},
		{
			name:       "everything missing",
			req:        &domain.CreateNoteRequest{},
			wantFields: []string{"title", "description", "tag"},
		},
		{
			name:       "runes not bytes",
			req:        &domain.CreateNoteRequest{Title: "日本", Description: "日本語", Tag: "tag"},
			wantFields: []string{"title"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(tt.req)

			if len(errs) != len(tt.wantFields) {
				t.Fatalf("expected %d errors, got %d: %+v", len(tt.wantFields), len(errs), errs)
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("error %d: expected field %q, got %q", i, field, errs[i].Field)
				}
				if errs[i].Location != "body" {
					t.Errorf("error %d: expected location body, got %q", i, errs[i].Location)
				}
			}
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	v := New()

	errs := v.Validate(&domain.CreateNoteRequest{Title: "ab", Description: "desc", Tag: "tag"})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}

	if errs[0].Msg != "Title must be atleast 3 character" {
		t.Errorf("unexpected message %q", errs[0].Msg)
	}
	if errs[0].Value != "ab" {
		t.Errorf("expected rejected value ab, got %v", errs[0].Value)
	}
}

func TestValidate_Register(t *testing.T) {
	v := New()

	errs := v.Validate(&domain.RegisterRequest{Name: "Sunil", Email: "not-an-email", Password: "short"})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %+v", errs)
	}
	if errs[0].Field != "email" || errs[0].Msg != "Enter a valid email" {
		t.Errorf("unexpected email error %+v", errs[0])
	}
	if errs[1].Field != "password" {
		t.Errorf("unexpected password error %+v", errs[1])
	}
}

func TestValidate_NonStruct(t *testing.T) {
	v := New()

	errs := v.Validate("plain string")
	if len(errs) != 1 || errs[0].Field != "" {
		t.Errorf("expected a single field-less error, got %+v", errs)
	}
}

func TestValidate_MessagesFollowTheFailingRule(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     interface{}
		field   string
		wantMsg string
	}{
		{
			name:    "blank login password",
			req:     &domain.LoginRequest{Email: "a@example.com", Password: ""},
			field:   "password",
			wantMsg: "Password cannot be blank",
		},
		{
			name:    "short register password",
			req:     &domain.RegisterRequest{Name: "Sunil", Email: "a@example.com", Password: "short"},
			field:   "password",
			wantMsg: "Password must be atleast 8 character",
		},
		{
			name:    "missing refresh token",
			req:     &domain.RefreshTokenRequest{},
			field:   "refresh_token",
			wantMsg: "Refresh token is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(tt.req)
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %+v", errs)
			}
			if errs[0].Field != tt.field || errs[0].Msg != tt.wantMsg {
				t.Errorf("got %s %q, want %s %q", errs[0].Field, errs[0].Msg, tt.field, tt.wantMsg)
			}
		})
	}
}
