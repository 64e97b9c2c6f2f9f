// internal/nav/nav.go
package nav

import (
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/session"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

// Page is a screen token. This is not a URL router: there is no history
// stack and no deep linking; the resolved page is re-derived from the role
// on every request.
type Page string

const (
	PageLogin Page = "login"

	// Staff pages
	PagePOS     Page = "pos"
	PageHistory Page = "history"

	// Admin pages
	PageDashboard Page = "dashboard"
	PageBills     Page = "bills"
	PageReports   Page = "reports"
	PageInventory Page = "inventory"
	PageProducts  Page = "products"
	PageStaff     Page = "staff"
)

var adminPages = map[Page]struct{}{
	PageDashboard: {},
	PageBills:     {},
	PageReports:   {},
	PageInventory: {},
	PageProducts:  {},
	PageStaff:     {},
}

var staffPages = map[Page]struct{}{
	PagePOS:     {},
	PageHistory: {},
}

// Resolve maps (session, requested token) to the screen to render.
//
// No session always resolves to the login screen. A session with a role
// outside the known set also resolves to login and reports UnknownRole: it
// must never fall through to a privileged screen. Otherwise an unknown or
// absent token resolves to the role's default screen.
func Resolve(sess *session.Session, requested Page) (Page, error) {
	if sess == nil {
		return PageLogin, nil
	}

	switch sess.Role {
	case session.RoleAdmin:
		if _, ok := adminPages[requested]; ok {
			return requested, nil
		}
		return PageDashboard, nil
	case session.RoleStaff:
		if _, ok := staffPages[requested]; ok {
			return requested, nil
		}
		return PagePOS, nil
	default:
		return PageLogin, apperrors.Newf(apperrors.CodeUnknownRole, "Unknown role %q", sess.Role)
	}
}

// Default returns the landing page for a role after login or restore
func Default(sess *session.Session) Page {
	page, _ := Resolve(sess, "")
	return page
}
