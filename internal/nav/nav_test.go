package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/domain/session"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

func adminSession() *session.Session {
	return &session.Session{UserID: 1, Username: "owner", Role: session.RoleAdmin}
}

func staffSession() *session.Session {
	return &session.Session{UserID: 2, Username: "barista", Role: session.RoleStaff}
}

func TestNoSessionResolvesToLogin(t *testing.T) {
	page, err := Resolve(nil, PageDashboard)
	require.NoError(t, err)
	assert.Equal(t, PageLogin, page)
}

func TestAdminGetsRequestedAdminPage(t *testing.T) {
	for _, requested := range []Page{PageDashboard, PageBills, PageReports, PageInventory, PageProducts, PageStaff} {
		page, err := Resolve(adminSession(), requested)
		require.NoError(t, err)
		assert.Equal(t, requested, page)
	}
}

func TestAdminRequestingStaffPageLandsOnDashboard(t *testing.T) {
	page, err := Resolve(adminSession(), PagePOS)
	require.NoError(t, err)
	assert.Equal(t, PageDashboard, page)
}

func TestStaffGetsRequestedStaffPage(t *testing.T) {
	for _, requested := range []Page{PagePOS, PageHistory} {
		page, err := Resolve(staffSession(), requested)
		require.NoError(t, err)
		assert.Equal(t, requested, page)
	}
}

func TestStaffRequestingAdminPageLandsOnPOS(t *testing.T) {
	for _, requested := range []Page{PageDashboard, PageStaff, PageReports} {
		page, err := Resolve(staffSession(), requested)
		require.NoError(t, err)
		assert.Equal(t, PagePOS, page)
	}
}

func TestUnknownTokenFallsBackToRoleDefault(t *testing.T) {
	page, err := Resolve(adminSession(), "settings")
	require.NoError(t, err)
	assert.Equal(t, PageDashboard, page)

	page, err = Resolve(staffSession(), "")
	require.NoError(t, err)
	assert.Equal(t, PagePOS, page)
}

func TestUnknownRoleResolvesToLoginWithError(t *testing.T) {
	sess := &session.Session{UserID: 3, Username: "ghost", Role: "MANAGER"}

	page, err := Resolve(sess, PagePOS)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnknownRole))
	assert.Equal(t, PageLogin, page)
}

func TestDefaultPerRole(t *testing.T) {
	assert.Equal(t, PageDashboard, Default(adminSession()))
	assert.Equal(t, PagePOS, Default(staffSession()))
	assert.Equal(t, PageLogin, Default(nil))
}
