package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fcpanel/internal/client/auth"
	"github.com/dmitrijs2005/fcpanel/internal/client/catalog"
	"github.com/dmitrijs2005/fcpanel/internal/client/client"
	"github.com/dmitrijs2005/fcpanel/internal/client/client/clienttest"
	"github.com/dmitrijs2005/fcpanel/internal/client/config"
	"github.com/dmitrijs2005/fcpanel/internal/client/dashboard"
	"github.com/dmitrijs2005/fcpanel/internal/client/models"
	"github.com/dmitrijs2005/fcpanel/internal/client/session"
	"github.com/dmitrijs2005/fcpanel/internal/logging"
)

var testUser = models.User{ID: 7, Username: "jdupont", Email: "jean@example.com", Nom: "Dupont", Prenom: "Jean"}

type testEnv struct {
	app    *App
	out    *bytes.Buffer
	errOut *bytes.Buffer
	auth   *clienttest.AuthClient
	vms    *clienttest.VMClient
	store  *session.MemoryStore
}

// newTestApp builds an App over in-memory fakes. input is what the user types.
func newTestApp(t *testing.T, input string) *testEnv {
	t.Helper()
	env := &testEnv{
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		auth:   &clienttest.AuthClient{Token: "tok-1", User: &testUser},
		vms:    &clienttest.VMClient{},
		store:  session.NewMemoryStore(),
	}
	cfg := &config.Config{OutputFormat: "table"}
	a, err := assemble(cfg, logging.Discard(), env.auth, env.vms, env.store, catalog.Default(),
		IO{In: strings.NewReader(input), Out: env.out, Err: env.errOut})
	require.NoError(t, err)
	env.app = a
	return env
}

// loggedIn stores a session and hydrates the provider from it.
func (e *testEnv) loggedIn(t *testing.T) {
	t.Helper()
	require.NoError(t, e.store.Set(context.Background(), session.Snapshot{Token: "tok-1", User: testUser}))
	require.Equal(t, auth.StateAuthenticated, e.app.auth.Hydrate(context.Background()))
}

func (e *testEnv) seed(vms ...models.VirtualMachine) {
	e.vms.VMs = append(e.vms.VMs, vms...)
}

func sampleVM(id int64, status models.VMStatus) models.VirtualMachine {
	return models.VirtualMachine{
		ID: id, UserID: testUser.ID, Hostname: fmt.Sprintf("web-%d", id),
		IPAddr: fmt.Sprintf("10.0.0.%d", 10+id), Gateway: "10.0.0.1", Status: status,
		Template: models.VMTemplate{CPU: 2, RAM: 2048, Storage: 5, KernelImage: "k", RootfsImage: "r"},
	}
}

func TestAssemble_RejectsUnknownOutput(t *testing.T) {
	_, err := assemble(&config.Config{OutputFormat: "xml"}, logging.Discard(),
		&clienttest.AuthClient{}, &clienttest.VMClient{}, session.NewMemoryStore(), catalog.Default(),
		IO{In: strings.NewReader(""), Out: &bytes.Buffer{}})
	require.Error(t, err)
}

func TestLogin_PromptsAndStoresSession(t *testing.T) {
	env := newTestApp(t, "jdupont\ns3cret\n")

	require.NoError(t, env.app.Login(context.Background()))

	assert.Equal(t, models.LoginCredentials{Username: "jdupont", Password: "s3cret"}, env.auth.LastSignIn)
	assert.Equal(t, "tok-1", env.auth.LastMeToken)
	assert.True(t, env.app.isLoggedIn())
	assert.Equal(t, "(jdupont)", env.app.status())
	assert.Contains(t, env.out.String(), "Logged in as Jean Dupont")

	snap, err := env.store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", snap.Token)
	assert.Equal(t, testUser, snap.User)
}

func TestLogin_FailureLeavesNoSession(t *testing.T) {
	env := newTestApp(t, "jdupont\nwrong\n")
	env.auth.SignInErr = &client.Error{Kind: client.KindStatus, Status: 401, Detail: "invalid username or password"}

	err := env.app.Login(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, env.app.isLoggedIn())
	assert.Equal(t, 0, env.auth.MeCalls)

	_, ok := env.store.Raw("token")
	assert.False(t, ok)
}

func TestLoginAs_SkipsUserPrompt(t *testing.T) {
	env := newTestApp(t, "s3cret\n")

	require.NoError(t, env.app.loginAs(context.Background(), "jdupont"))
	assert.Equal(t, "jdupont", env.auth.LastSignIn.Username)
	assert.NotContains(t, env.out.String(), "Enter user name")
}

func TestRegister_ThenLogsIn(t *testing.T) {
	env := newTestApp(t, "jdupont\nJean\nDupont\njean@example.com\ns3cret\ns3cret\n")

	require.NoError(t, env.app.Register(context.Background()))

	assert.Equal(t, models.RegisterData{
		Username: "jdupont", Password: "s3cret", Nom: "Dupont", Prenom: "Jean", Email: "jean@example.com",
	}, env.auth.LastSignUp)
	assert.Equal(t, 1, env.auth.SignInCalls)
	assert.True(t, env.app.isLoggedIn())
	assert.Contains(t, env.out.String(), "Registered and logged in as jdupont")
}

func TestRegister_PasswordMismatchMakesNoCall(t *testing.T) {
	env := newTestApp(t, "jdupont\nJean\nDupont\njean@example.com\ns3cret\nother\n")

	err := env.app.Register(context.Background())
	require.Error(t, err)
	assert.Equal(t, client.KindValidation, client.KindOf(err))
	assert.Equal(t, 0, env.auth.Calls())
	assert.False(t, env.app.isLoggedIn())
}

func TestRegisterWith_PromptsOnlyMissingFields(t *testing.T) {
	env := newTestApp(t, "jean@example.com\npw\npw\n")

	form := models.RegisterForm{RegisterData: models.RegisterData{Username: "jdupont", Nom: "Dupont", Prenom: "Jean"}}
	require.NoError(t, env.app.registerWith(context.Background(), form))

	assert.Equal(t, "jean@example.com", env.auth.LastSignUp.Email)
	assert.NotContains(t, env.out.String(), "Enter user name")
}

func TestRegister_SignupFailureSkipsLogin(t *testing.T) {
	env := newTestApp(t, "jdupont\nJean\nDupont\njean@example.com\npw\npw\n")
	env.auth.SignUpErr = &client.Error{Kind: client.KindStatus, Status: 409, Detail: "username already taken"}

	err := env.app.Register(context.Background())
	require.EqualError(t, err, "username already taken")
	assert.Equal(t, 0, env.auth.SignInCalls)
}

func TestLogout_ClearsSession(t *testing.T) {
	env := newTestApp(t, "")
	env.loggedIn(t)

	require.NoError(t, env.app.Logout(context.Background()))

	assert.False(t, env.app.isLoggedIn())
	assert.Equal(t, "", env.app.status())
	_, ok := env.store.Raw("token")
	assert.False(t, ok)
	_, ok = env.store.Raw("user")
	assert.False(t, ok)
	assert.Equal(t, 0, env.auth.Calls(), "logout never calls the API")
}

func TestWhoAmI(t *testing.T) {
	env := newTestApp(t, "")

	err := env.app.WhoAmI(context.Background())
	assert.Equal(t, client.KindUnauthenticated, client.KindOf(err))

	env.loggedIn(t)
	require.NoError(t, env.app.WhoAmI(context.Background()))
	assert.Contains(t, env.out.String(), "jean@example.com")
	assert.Contains(t, env.out.String(), "Jean Dupont")
}

func TestList_RequiresSession(t *testing.T) {
	env := newTestApp(t, "")

	err := env.app.List(context.Background())
	assert.Equal(t, client.KindUnauthenticated, client.KindOf(err))
	assert.Equal(t, 0, env.vms.ListCalls)
}

func TestList_PrintsStatsAndTable(t *testing.T) {
	env := newTestApp(t, "")
	env.loggedIn(t)
	env.seed(sampleVM(1, models.StatusRunning), sampleVM(2, models.StatusStopped))
	env.seed(models.VirtualMachine{ID: 3, UserID: 99, Hostname: "someone-else"})

	require.NoError(t, env.app.List(context.Background()))

	out := env.out.String()
	assert.Contains(t, out, "ACTIVE VMS")
	assert.Contains(t, out, "4 cores")
	assert.Contains(t, out, "4.0 GB")
	assert.Contains(t, out, "web-1")
	assert.Contains(t, out, "web-2")
	assert.NotContains(t, out, "someone-else")
	assert.Equal(t, "tok-1", env.vms.LastToken)
	assert.Equal(t, testUser.ID, env.vms.LastUserID)
}

func TestList_JSONSkipsStats(t *testing.T) {
	env := newTestApp(t, "")
	env.app.config.OutputFormat = "json"
	f, err := assemble(env.app.config, logging.Discard(), env.auth, env.vms, env.store, catalog.Default(),
		IO{In: strings.NewReader(""), Out: env.out})
	require.NoError(t, err)
	env.app = f
	env.loggedIn(t)
	env.seed(sampleVM(1, models.StatusRunning))

	require.NoError(t, env.app.List(context.Background()))
	assert.NotContains(t, env.out.String(), "ACTIVE VMS")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(env.out.String()), "["))
}

func TestGet(t *testing.T) {
	env := newTestApp(t, "1\n")
	env.loggedIn(t)
	env.seed(sampleVM(1, models.StatusRunning))

	require.NoError(t, env.app.Get(context.Background(), "1"))
	assert.Contains(t, env.out.String(), "web-1")

	env.out.Reset()
	require.NoError(t, env.app.Get(context.Background(), ""), "id is prompted for")
	assert.Contains(t, env.out.String(), "Enter VM id")

	var ce *client.Error
	err := env.app.Get(context.Background(), "42")
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 404, ce.Status)
}

func TestGet_InvalidID(t *testing.T) {
	env := newTestApp(t, "")
	env.loggedIn(t)

	for _, arg := range []string{"abc", "0", "-3"} {
		err := env.app.Get(context.Background(), arg)
		assert.Equal(t, client.KindValidation, client.KindOf(err), arg)
	}
}

func TestCreateVM_SubmitsAndRefetches(t *testing.T) {
	env := newTestApp(t, "")
	env.loggedIn(t)

	form := dashboard.CreateForm{SizeID: "small", OSID: "ubuntu", Hostname: "web-1", IPAddr: "10.0.0.10/24", Gateway: "10.0.0.1"}
	require.NoError(t, env.app.createVM(context.Background(), form))

	require.NotNil(t, env.vms.LastCreate)
	assert.Equal(t, testUser.ID, env.vms.LastCreate.UserID)
	assert.Equal(t, 2, env.vms.LastCreate.Template.CPU)
	assert.Equal(t, 2048, env.vms.LastCreate.Template.RAM)
	assert.Equal(t, 1, env.vms.ListCalls, "list is re-fetched after create")
	assert.Len(t, env.app.dash.VMs(), 1)
	assert.Contains(t, env.out.String(), "VM 1 (web-1) created")
}

func TestCreateVM_EmptyFieldBlocksCall(t *testing.T) {
	env := newTestApp(t, "")
	env.loggedIn(t)

	form := dashboard.CreateForm{SizeID: "small", OSID: "ubuntu", Hostname: "", IPAddr: "10.0.0.10", Gateway: "10.0.0.1"}
	err := env.app.createVM(context.Background(), form)
	assert.Equal(t, client.KindValidation, client.KindOf(err))
	assert.Equal(t, 0, env.vms.CreateCalls)
}

func TestCreateInteractive(t *testing.T) {
	env := newTestApp(t, "medium\ndebian\ndb-1\n10.0.0.20\n10.0.0.1\n\n")
	env.loggedIn(t)

	require.NoError(t, env.app.CreateInteractive(context.Background()))

	require.NotNil(t, env.vms.LastCreate)
	assert.Equal(t, "db-1", env.vms.LastCreate.Hostname)
	assert.Equal(t, 4, env.vms.LastCreate.Template.CPU)
	assert.Contains(t, env.out.String(), "Debian 11", "catalog is shown before the prompts")
}

func TestCreateInteractive_RequiresSession(t *testing.T) {
	env := newTestApp(t, "")

	err := env.app.CreateInteractive(context.Background())
	assert.Equal(t, client.KindUnauthenticated, client.KindOf(err))
	assert.Empty(t, env.out.String())
}

func TestCreateVMFromFile(t *testing.T) {
	env := newTestApp(t, "")
	env.loggedIn(t)

	path := filepath.Join(t.TempDir(), "vm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
hostname: " web-9 "
ip_addr: 10.0.0.9
gateway: 10.0.0.1
template:
  cpu: 1
  ram: 1024
  storage: 2
  kernel_image: /images/hello-vmlinux.bin
  rootfs_image: /images/ubuntu-22.04.ext4
`), 0o600))

	require.NoError(t, env.app.createVMFromFile(context.Background(), path))
	assert.Equal(t, "web-9", env.vms.LastCreate.Hostname)
	assert.Equal(t, testUser.ID, env.vms.LastCreate.UserID)

	err := env.app.createVMFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, client.KindValidation, client.KindOf(err))
}

func TestDelete_Confirmation(t *testing.T) {
	env := newTestApp(t, "n\ny\n")
	env.loggedIn(t)
	env.seed(sampleVM(1, models.StatusStopped))

	require.NoError(t, env.app.Delete(context.Background(), "1"))
	assert.Equal(t, 0, env.vms.DeleteCalls)
	assert.Contains(t, env.out.String(), "Cancelled")

	require.NoError(t, env.app.Delete(context.Background(), "1"))
	assert.Equal(t, 1, env.vms.DeleteCalls)
	assert.Contains(t, env.out.String(), "VM 1 deleted")
	assert.Empty(t, env.app.dash.VMs())
}

func TestDelete_YesSkipsPrompt(t *testing.T) {
	env := newTestApp(t, "")
	env.loggedIn(t)
	env.seed(sampleVM(1, models.StatusStopped))

	require.NoError(t, env.app.deleteVM(context.Background(), "1", true))
	assert.Equal(t, 1, env.vms.DeleteCalls)
	assert.NotContains(t, env.out.String(), "[y/N]")
}

func TestDelete_FailureKeepsList(t *testing.T) {
	env := newTestApp(t, "")
	env.loggedIn(t)
	env.seed(sampleVM(1, models.StatusStopped))
	require.NoError(t, env.app.dash.Refresh(context.Background()))
	env.vms.DeleteErr = &client.Error{Kind: client.KindStatus, Status: 500, Detail: "boom"}

	err := env.app.deleteVM(context.Background(), "1", true)
	require.EqualError(t, err, "boom")
	assert.Len(t, env.app.dash.VMs(), 1)
}

func TestStartStop(t *testing.T) {
	env := newTestApp(t, "")
	env.loggedIn(t)
	env.seed(sampleVM(1, models.StatusStopped))

	require.NoError(t, env.app.Start(context.Background(), "1"))
	assert.Equal(t, 1, env.app.dash.Stats().ActiveVMs)
	assert.Contains(t, env.out.String(), "VM 1 started")

	require.NoError(t, env.app.Stop(context.Background(), "1"))
	assert.Equal(t, 0, env.app.dash.Stats().ActiveVMs)
	assert.Contains(t, env.out.String(), "VM 1 stopped")
}

func TestRefreshStats(t *testing.T) {
	env := newTestApp(t, "")
	env.loggedIn(t)
	env.seed(sampleVM(1, models.StatusRunning), sampleVM(2, models.StatusRunning))

	require.NoError(t, env.app.RefreshStats(context.Background()))
	assert.Contains(t, env.out.String(), "4 cores")
	assert.Equal(t, 1, env.vms.ListCalls)
}

func TestCatalog(t *testing.T) {
	env := newTestApp(t, "")

	require.NoError(t, env.app.Catalog(context.Background()))
	out := env.out.String()
	for _, want := range []string{"micro", "small", "medium", "large", "Ubuntu 22.04 LTS", "Debian 11"} {
		assert.Contains(t, out, want)
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = parseID("x")
	assert.Equal(t, client.KindValidation, client.KindOf(err))
}

func TestClose_Idempotent(t *testing.T) {
	env := newTestApp(t, "")
	require.NoError(t, env.app.Close())
	require.NoError(t, env.app.Close())
}

func TestSlowCall_ShowsWorkingNotice(t *testing.T) {
	env := newTestApp(t, "")
	env.loggedIn(t)
	env.seed(sampleVM(1, models.StatusStopped))
	env.app.busyAfter = 10 * time.Millisecond
	env.vms.Delay = 200 * time.Millisecond

	require.NoError(t, env.app.Start(context.Background(), "1"))
	assert.Contains(t, env.errOut.String(), "Working...")
	assert.NotContains(t, env.out.String(), "Working...")
	assert.Contains(t, env.out.String(), "VM 1 started")
}

func TestFastCall_NoWorkingNotice(t *testing.T) {
	env := newTestApp(t, "")
	env.loggedIn(t)
	env.seed(sampleVM(1, models.StatusRunning))
	env.app.busyAfter = time.Hour

	require.NoError(t, env.app.List(context.Background()))
	assert.Empty(t, env.errOut.String())
	assert.False(t, env.app.dash.Loading())
}
