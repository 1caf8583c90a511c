package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"ignis_shield/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

const testSecret = "test-secret"

func newMockRepo(t *testing.T) (*SessionSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewSessionSQLite(db, NewSealer(testSecret))
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestSessionSQLite_Create(t *testing.T) {
	created := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	sess := models.Session{
		ID:        "sid-1",
		Token:     "ignisshield::demo@example.com::1",
		User:      models.User{ID: "u1", Name: "Demo", Email: "demo@example.com"},
		CreatedAt: created,
	}

	tests := []struct {
		name           string
		mockExpect     func(sqlmock.Sqlmock)
		wantErr        bool
		errContainsStr string
	}{
		{
			name: "success",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertSessionSQL)).
					WithArgs("sid-1", sealedNot(sess.Token), `{"id":"u1","name":"Demo","email":"demo@example.com"}`, created).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "exec error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertSessionSQL)).
					WillReturnError(errors.New("disk full"))
			},
			wantErr:        true,
			errContainsStr: "insert session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			err := repo.Create(context.Background(), sess)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errContainsStr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSessionSQLite_Get(t *testing.T) {
	created := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	sealed, err := NewSealer(testSecret).Seal("tok-abc")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	otherKey, err := NewSealer("another-secret").Seal("tok-abc")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	columns := []string{"id", "token", "user_json", "created_at"}

	tests := []struct {
		name           string
		mockExpect     func(sqlmock.Sqlmock)
		wantNil        bool
		wantErr        bool
		errContainsStr string
	}{
		{
			name: "found",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
					WithArgs("sid-1").
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("sid-1", sealed, `{"id":"u1","name":"Demo","email":"demo@example.com"}`, created))
			},
		},
		{
			name: "not found",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
					WithArgs("sid-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantNil: true,
		},
		{
			name: "query error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
					WithArgs("sid-1").
					WillReturnError(errors.New("db locked"))
			},
			wantErr:        true,
			errContainsStr: "select session",
		},
		{
			name: "token sealed with another key",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
					WithArgs("sid-1").
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("sid-1", otherKey, `{}`, created))
			},
			wantErr:        true,
			errContainsStr: "open token",
		},
		{
			name: "malformed user json",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectSessionSQL)).
					WithArgs("sid-1").
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("sid-1", sealed, `{not json`, created))
			},
			wantErr:        true,
			errContainsStr: "unmarshal user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			s, err := repo.Get(context.Background(), "sid-1")
			switch {
			case tt.wantErr:
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errContainsStr)
				}
			case tt.wantNil:
				if err != nil || s != nil {
					t.Fatalf("want (nil, nil), got (%+v, %v)", s, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if s.Token != "tok-abc" {
					t.Errorf("token: got %q, want %q", s.Token, "tok-abc")
				}
				if s.User.Email != "demo@example.com" || s.User.Name != "Demo" {
					t.Errorf("unexpected user: %+v", s.User)
				}
				if !s.CreatedAt.Equal(created) {
					t.Errorf("created_at: got %v, want %v", s.CreatedAt, created)
				}
			}
		})
	}
}

func TestSessionSQLite_Delete(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deleteSessionSQL)).
		WithArgs("sid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "sid-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

// sealedNot matches a sealed token argument that opens to plain but is not
// stored as plain text.
type sealedNot string

func (p sealedNot) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok || s == string(p) {
		return false
	}
	plain, err := NewSealer(testSecret).Open(s)
	return err == nil && plain == string(p)
}
