package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giraffekitchen/kitchenctl/internal/api"
	"github.com/giraffekitchen/kitchenctl/internal/db"
	"github.com/giraffekitchen/kitchenctl/internal/domain"
	"github.com/giraffekitchen/kitchenctl/internal/session"
)

// testToken returns a signed JWT carrying an HQ user's claims.
func testToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":       "1",
		"email":     "hq@example.com",
		"full_name": "Noa Katz",
		"role":      "hq",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// backendMux builds a fake backend with small fixtures.
func backendMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(v))
	}

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "Incorrect email or password"})
			return
		}
		writeJSON(w, map[string]string{"access_token": testToken(t), "token_type": "bearer"})
	})
	mux.HandleFunc("/branches/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var req struct {
				Name     string `json:"name"`
				Location string `json:"location"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, domain.Branch{ID: 3, Name: req.Name, Location: req.Location})
			return
		}
		writeJSON(w, []domain.Branch{
			{ID: 1, Name: "רמת גן"},
			{ID: 2, Name: "תל אביב"},
		})
	})
	mux.HandleFunc("/auth/users", func(w http.ResponseWriter, r *http.Request) {
		branchID := 1
		writeJSON(w, []domain.User{
			{ID: 1, Email: "hq@example.com", FullName: "Noa Katz", Role: domain.RoleHQ},
			{ID: 2, Email: "rg@example.com", FullName: "יוסי לוי", Role: domain.RoleBranchManager, BranchID: &branchID},
		})
	})
	mux.HandleFunc("/dishes/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []domain.Dish{
			{ID: 4, Name: "שקשוקה"},
			{ID: 5, Name: "חומוס"},
		})
	})
	mux.HandleFunc("/chefs/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []domain.Chef{{ID: 9, Name: "אבי", BranchID: 1}})
	})
	mux.HandleFunc("/checks/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var req api.CheckCreate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, domain.DishCheck{ID: 77, DishName: "שקשוקה", Rating: req.Rating})
			return
		}
		writeJSON(w, []domain.DishCheck{
			{ID: 1, BranchName: "רמת גן", DishName: "שקשוקה", Rating: 8, CheckDate: time.Now()},
		})
	})
	mux.HandleFunc("/tasks/assignments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []domain.TaskAssignment{
			{ID: 3, TaskTitle: "בדיקת מנה: שקשוקה", BranchName: "רמת גן", TaskDate: time.Now().Format("2006-01-02")},
		})
	})
	mux.HandleFunc("/tasks/assignments/3/complete", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/sanitation-audits/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var req api.AuditCreate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(w, domain.SanitationAudit{
				ID: 12, BranchID: req.BranchID, BranchName: "רמת גן",
				AuditorName: req.AuditorName, Status: domain.AuditInProgress,
				Categories: req.Categories,
			})
			return
		}
		writeJSON(w, []domain.SanitationAudit{
			{ID: 11, BranchName: "רמת גן", AuditorName: "דנה", TotalScore: 92.5,
				Status: domain.AuditCompleted, AuditDate: time.Now()},
		})
	})
	mux.HandleFunc("/sanitation-audits/12", func(w http.ResponseWriter, r *http.Request) {
		var req api.AuditUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		audit := domain.SanitationAudit{ID: 12, BranchName: "רמת גן", TotalScore: 88}
		if req.Status != nil {
			audit.Status = *req.Status
		}
		writeJSON(w, audit)
	})
	mux.HandleFunc("/manager-evaluations/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("branch_id") == "2" {
			writeJSON(w, []domain.ManagerEvaluation{})
			return
		}
		writeJSON(w, []domain.ManagerEvaluation{
			{ID: 21, BranchName: "רמת גן", ManagerName: "יוסי", OverallRating: 7.5,
				Status: domain.EvaluationCompleted, EvaluationDate: "2026-08-29"},
			{ID: 22, BranchName: "תל אביב", ManagerName: "דנה כהן", OverallRating: 6,
				Status: domain.EvaluationCompleted, EvaluationDate: "2026-08-28"},
		})
	})
	mux.HandleFunc("/manager-evaluations/22", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, domain.ManagerEvaluation{
			ID: 22, BranchName: "תל אביב", ManagerName: "דנה כהן", OverallRating: 6,
			Status: domain.EvaluationCompleted, EvaluationDate: "2026-08-28",
		})
	})
	mux.HandleFunc("/manager-evaluations/21", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, domain.ManagerEvaluation{
			ID: 21, BranchName: "רמת גן", ManagerName: "יוסי", OverallRating: 7.5,
			Status: domain.EvaluationCompleted, EvaluationDate: "2026-08-29",
			GeneralComments: "מנהל מסור",
			Categories: []domain.EvaluationCategory{
				{Name: "תפעול", Rating: 8, Comments: "ניקיון: המטבח נקי\nהערה כללית"},
			},
		})
	})

	return mux
}

// newTestApp wires an App against a fake backend and a temp database.
func newTestApp(t *testing.T, handler http.Handler) *App {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := api.DefaultConfig()
	cfg.BaseURL = srv.URL

	conn, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &App{
		API:           api.NewClient(cfg, nil),
		Session:       session.NewStore(conn),
		IsInteractive: func() bool { return false },
	}
}

// runCommand executes a cobra command tree and captures stdout.
func runCommand(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = pw

	root := NewRootCmd(app)
	root.SetOut(pw)
	root.SetErr(pw)
	root.SetArgs(args)
	root.SilenceUsage = true

	execErr := root.Execute()

	pw.Close()
	os.Stdout = origStdout
	out, readErr := io.ReadAll(pr)
	require.NoError(t, readErr)

	return string(out), execErr
}

func signIn(t *testing.T, app *App) {
	t.Helper()
	_, err := runCommand(t, app, "login", "--email", "hq@example.com", "--password", "secret")
	require.NoError(t, err)
}

func TestWhoamiWithoutSession(t *testing.T) {
	app := newTestApp(t, backendMux(t))

	out, err := runCommand(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestLoginStoresSession(t *testing.T) {
	app := newTestApp(t, backendMux(t))

	out, err := runCommand(t, app, "login", "--email", "hq@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Noa Katz")

	out, err = runCommand(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "hq@example.com")
	assert.Contains(t, out, "HQ")
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t, backendMux(t))

	_, err := runCommand(t, app, "login", "--email", "hq@example.com", "--password", "wrong")
	assert.ErrorIs(t, err, api.ErrNotAuthorized)
}

func TestLogout(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	out, err := runCommand(t, app, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")

	out, err = runCommand(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestChecksListRequiresLogin(t *testing.T) {
	app := newTestApp(t, backendMux(t))

	_, err := runCommand(t, app, "checks", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}

func TestChecksList(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	out, err := runCommand(t, app, "checks", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "שקשוקה")
	assert.Contains(t, out, "רמת גן")
	assert.Contains(t, out, "8/10")
}

func TestChecksAdd(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	out, err := runCommand(t, app, "checks", "add",
		"--branch", "1", "--dish", "4", "--rating", "9", "--comments", "מצוין")
	require.NoError(t, err)
	assert.Contains(t, out, "#77")
}

func TestChecksAddRejectsBadRating(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	_, err := runCommand(t, app, "checks", "add", "--branch", "1", "--dish", "4", "--rating", "12")
	assert.ErrorIs(t, err, api.ErrValidation)
}

func TestTasksCreateRequiresDishForDishCheck(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	_, err := runCommand(t, app, "tasks", "create", "--type", "DISH_CHECK", "--branch", "1")
	assert.ErrorIs(t, err, api.ErrValidation)
}

func TestTasksComplete(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	out, err := runCommand(t, app, "tasks", "complete", "3", "--notes", "בוצע")
	require.NoError(t, err)
	assert.Contains(t, out, "#3")
}

func TestBranchesAdd(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	out, err := runCommand(t, app, "branches", "add", "--name", "חיפה", "--location", "הנמל 2")
	require.NoError(t, err)
	assert.Contains(t, out, "חיפה")

	_, err = runCommand(t, app, "branches", "add")
	assert.ErrorIs(t, err, api.ErrValidation)
}

func TestUsersList(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	out, err := runCommand(t, app, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Noa Katz")
	assert.Contains(t, out, "יוסי לוי")
}

func TestAuditsStartOpensChecklist(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	out, err := runCommand(t, app, "audits", "start", "--branch", "1", "--accompanist", "יוסי")
	require.NoError(t, err)
	assert.Contains(t, out, "audit 12")
	assert.Contains(t, out, "6 categories")

	_, err = runCommand(t, app, "audits", "start")
	assert.ErrorIs(t, err, api.ErrValidation)
}

func TestAuditsClose(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	out, err := runCommand(t, app, "audits", "close", "12", "--notes", "נמצאו ליקויים קלים")
	require.NoError(t, err)
	assert.Contains(t, out, "closed")
	assert.Contains(t, out, "88")
}

func TestAuditsList(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	out, err := runCommand(t, app, "audits", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "92.5")
	assert.Contains(t, out, "דנה")
}

func TestEvaluationsList(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	out, err := runCommand(t, app, "evaluations", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "יוסי")
	assert.Contains(t, out, "7.5/10")
}

func TestReportsGroup(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	out, err := runCommand(t, app, "reports", "audits")
	require.NoError(t, err)
	assert.Contains(t, out, "92.5")

	out, err = runCommand(t, app, "reports", "evaluations")
	require.NoError(t, err)
	assert.Contains(t, out, "יוסי")
}

func TestEvaluationsListRemembersBranchFilter(t *testing.T) {
	app := newTestApp(t, backendMux(t))
	signIn(t, app)

	out, err := runCommand(t, app, "evaluations", "list", "--branch", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "No evaluations found")

	// The filter sticks without the flag.
	out, err = runCommand(t, app, "evaluations", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No evaluations found")

	// --branch 0 resets it.
	out, err = runCommand(t, app, "evaluations", "list", "--branch", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "יוסי")
}

func TestRootWithoutTerminalShowsHelp(t *testing.T) {
	app := newTestApp(t, backendMux(t))

	out, err := runCommand(t, app)
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(out), "usage")
}
