package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giraffekitchen/kitchenctl/internal/domain"
	"github.com/giraffekitchen/kitchenctl/internal/session"
	"github.com/giraffekitchen/kitchenctl/internal/teatest"
)

func hqUser() domain.User {
	return domain.User{ID: 1, Email: "hq@example.com", FullName: "Noa Katz", Role: domain.RoleHQ}
}

func newTUIDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newAppModel(app), teatest.WithSize(100, 40))
	d.DrainInit()
	return d
}

func TestStartsAtLoginWithoutSession(t *testing.T) {
	app := newTestApp(t, backendMux(t))

	d := newTUIDriver(t, app)
	assert.Contains(t, d.View(), "Sign In")
}

func TestResumesSessionAtDashboard(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	require.NoError(t, app.Session.Save(context.Background(), testToken(t), hqUser()))

	d := newTUIDriver(t, app)
	view := d.View()
	assert.Contains(t, view, "Dashboard")
	assert.Contains(t, view, "Noa Katz")
	assert.Contains(t, view, "שקשוקה") // recent checks loaded
}

func TestExpiredSessionFallsBackToLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	})
	app := newTestApp(t, mux)
	require.NoError(t, app.Session.Save(context.Background(), "stale-token", hqUser()))

	d := newTUIDriver(t, app)

	// The dashboard load was rejected; the app silently returns to login
	// and drops the stored session.
	view := d.View()
	assert.Contains(t, view, "Sign In")
	assert.NotContains(t, view, "Could not validate")

	_, err := app.Session.Current(context.Background())
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestDashboardNavigatesToTasks(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	require.NoError(t, app.Session.Save(context.Background(), testToken(t), hqUser()))

	d := newTUIDriver(t, app)
	d.PressKey('t')

	view := d.View()
	assert.Contains(t, view, "ASSIGNMENTS")
	assert.Contains(t, view, "בדיקת מנה: שקשוקה")

	// Esc pops back to the dashboard.
	d.PressEsc()
	assert.Contains(t, d.View(), "RECENT CHECKS")
}

func TestTaskToggleRoundTrips(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	require.NoError(t, app.Session.Save(context.Background(), testToken(t), hqUser()))

	d := newTUIDriver(t, app)
	d.PressKey('t')
	require.Contains(t, d.View(), "Pending")

	// Toggling completes the assignment server-side and reloads the list.
	// The fixture server always returns the same pending state, so the
	// assertion is that the toggle round-trip did not error or banner.
	d.PressKey(' ')
	view := d.View()
	assert.Contains(t, view, "בדיקת מנה: שקשוקה")
	assert.NotContains(t, view, "✗")
}

func TestDashboardNavigatesToReports(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	require.NoError(t, app.Session.Save(context.Background(), testToken(t), hqUser()))

	d := newTUIDriver(t, app)
	d.PressKey('s')

	view := d.View()
	assert.Contains(t, view, "SANITATION AUDITS")
	assert.Contains(t, view, "92.5")
}

func TestDashboardNavigatesToEvaluations(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	require.NoError(t, app.Session.Save(context.Background(), testToken(t), hqUser()))

	d := newTUIDriver(t, app)
	d.PressKey('e')

	view := d.View()
	assert.Contains(t, view, "MANAGER EVALUATIONS")
	assert.Contains(t, view, "יוסי")
}

func TestEvaluationDetailDecodesComments(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	require.NoError(t, app.Session.Save(context.Background(), testToken(t), hqUser()))

	d := newTUIDriver(t, app)
	d.PressKey('e')
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "תפעול")
	assert.Contains(t, view, "המטבח נקי")
	assert.Contains(t, view, "הערה כללית")

	// 'd' opens the delete confirmation on top of the detail view.
	d.PressKey('d')
	assert.Contains(t, d.View(), "Delete the evaluation")
}

func TestLoginFormSignsIn(t *testing.T) {
	app := newTestApp(t, backendMux(t))

	d := newTUIDriver(t, app)
	require.Contains(t, d.View(), "Sign In")

	d.Type("hq@example.com")
	d.PressEnter()
	d.Type("secret")
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "Dashboard")
	assert.Contains(t, view, "Noa Katz")

	// The session was persisted, not just held in memory.
	sess, err := app.Session.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hq@example.com", sess.User.Email)
}

func TestEvaluationListCursorMovement(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	require.NoError(t, app.Session.Save(context.Background(), testToken(t), hqUser()))

	d := newTUIDriver(t, app)
	d.PressKey('e')

	// Arrow down selects the second row; enter opens its detail.
	d.PressDown()
	d.PressEnter()
	assert.Contains(t, d.View(), "דנה כהן")

	// Back in the list the cursor is unchanged; arrow up returns to the
	// first row.
	d.PressEsc()
	d.PressUp()
	d.PressEnter()
	assert.Contains(t, d.View(), "מנהל מסור")
}

func TestCtrlCQuits(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	require.NoError(t, app.Session.Save(context.Background(), testToken(t), hqUser()))

	d := newTUIDriver(t, app)
	d.PressKey('t')
	d.PressCtrlC()
	assert.True(t, d.Quitting)
}

func TestQuitKey(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	require.NoError(t, app.Session.Save(context.Background(), testToken(t), hqUser()))

	d := newTUIDriver(t, app)
	d.PressKey('q')
	assert.True(t, d.Quitting)
}
