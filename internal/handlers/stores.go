package handlers

import (
	"context"
	"io"

	"ptsportal/api/internal/models"
)

// Store interfaces consumed by the handler set. The pgx repositories satisfy
// them; tests swap in fakes.

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, user models.User) error
	Delete(ctx context.Context, id string) error
}

type CommitteeStore interface {
	Create(ctx context.Context, committee models.Committee) error
	GetByID(ctx context.Context, id string) (models.Committee, error)
	List(ctx context.Context) ([]models.Committee, error)
	Delete(ctx context.Context, id string) (string, error)
	AddOfficer(ctx context.Context, committeeID string, officer models.Officer) error
	UpdateOfficerImage(ctx context.Context, committeeID string, userID string, image string) error
	RemoveOfficer(ctx context.Context, committeeID string, userID string) error
}

type LibraryStore interface {
	Create(ctx context.Context, entry models.LibraryEntry) error
	GetByID(ctx context.Context, id string) (models.LibraryEntry, error)
	List(ctx context.Context) ([]models.LibraryEntry, error)
	Delete(ctx context.Context, id string) error
	AddContent(ctx context.Context, id string, name string) error
	RemoveContent(ctx context.Context, id string, name string) error
}

type TuteeStore interface {
	List(ctx context.Context) ([]models.Tutee, error)
}

type ScheduleStore interface {
	GetByID(ctx context.Context, id string) (models.Schedule, error)
	Delete(ctx context.Context, id string) error
}

type PortraitStore interface {
	UploadPortrait(ctx context.Context, key string, contentType string, data io.Reader, size int64) (string, error)
}
