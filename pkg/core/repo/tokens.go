package repo

import (
	"time"

	"github.com/goride/goride/pkg/core/model"
)

// Tokens issues and verifies the bearer credentials of the local
// identity provider. A verified token yields the identity which it
// was issued for.
type Tokens interface {
	Issue(s *model.Session, now time.Time) (string, error)
	Verify(token string) (*model.Session, error)
}
