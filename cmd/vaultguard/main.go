package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"vaultguard-client/internal/cache"
	"vaultguard-client/internal/config"
	"vaultguard-client/internal/controllers"
	"vaultguard-client/internal/gateway"
	"vaultguard-client/internal/session"
	"vaultguard-client/internal/statement"
	"vaultguard-client/internal/token"
	"vaultguard-client/internal/validator"
	"vaultguard-client/internal/worker"
)

const usage = `vaultguard - terminal client for the VaultGuard banking service

Commands:
  register    -username U -name N -email E -password P
  login       -username U -password P
  logout
  verify      -id EMAIL_ID -code SECRET_CODE
  dashboard
  accounts
  create-account -currency USD
  transfer    -from ID -to ID -amount 12.34 [-currency XXX]
  history     -account ID [-pages N]
  export      -format pdf|xlsx -out DIR [-account ID]
  whoami
  bench       -n COUNT
`

// app bundles the wiring every command shares.
type app struct {
	cfg      config.Config
	session  *session.Store
	gw       *gateway.Client
	accounts *cache.AccountCache
	flash    *controllers.Flash
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	store := session.NewStore(cfg.SessionFile)
	gw := gateway.New(cfg.APIBaseURL, cfg.RequestTimeout, store, func() {
		fmt.Fprintln(os.Stderr, "Session expired - please run `vaultguard login`.")
	})

	a := &app{
		cfg:      cfg,
		session:  store,
		gw:       gw,
		accounts: cache.NewAccountCache(gw, cfg.PageSize),
		flash:    controllers.NewFlash(cfg.FlashDuration),
	}

	cmd, args := os.Args[1], os.Args[2:]
	if err := a.run(cmd, args); err != nil {
		// Controllers already put the friendly message in the flash.
		if text, _, ok := a.flash.Get(); ok {
			fmt.Fprintln(os.Stderr, text)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func (a *app) run(cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.register(args)
	case "login":
		return a.login(args)
	case "logout":
		return controllers.NewAuthController(a.gw, a.flash).Logout()
	case "verify":
		return a.verify(args)
	case "dashboard":
		return a.dashboard()
	case "accounts":
		return a.listAccounts()
	case "create-account":
		return a.createAccount(args)
	case "transfer":
		return a.transfer(args)
	case "history":
		return a.history(args)
	case "export":
		return a.export(args)
	case "whoami":
		return a.whoami()
	case "bench":
		return a.bench(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) register(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "username")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	auth := controllers.NewAuthController(a.gw, a.flash)
	if err := auth.Register(*username, *name, *email, *password); err != nil {
		return err
	}
	printFlash(a.flash)
	return nil
}

func (a *app) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	auth := controllers.NewAuthController(a.gw, a.flash)
	if err := auth.Login(*username, *password); err != nil {
		return err
	}
	printFlash(a.flash)
	return nil
}

func (a *app) verify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	emailID := fs.Int64("id", 0, "email id from the verification link")
	code := fs.String("code", "", "secret code from the verification link")
	fs.Parse(args)

	auth := controllers.NewAuthController(a.gw, a.flash)
	if err := auth.VerifyEmail(*emailID, *code); err != nil {
		return err
	}
	printFlash(a.flash)
	return nil
}

func (a *app) dashboard() error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	dash := controllers.NewDashboardController(a.gw, a.accounts, a.flash)
	if err := dash.Refresh(); err != nil {
		return err
	}
	dash.Render(os.Stdout)
	return nil
}

func (a *app) listAccounts() error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	manager := controllers.NewAccountManagerController(a.gw, a.accounts, a.flash)
	if err := manager.Refresh(); err != nil {
		return err
	}
	manager.Render(os.Stdout)
	return nil
}

func (a *app) createAccount(args []string) error {
	fs := flag.NewFlagSet("create-account", flag.ExitOnError)
	currency := fs.String("currency", "USD", "account currency")
	fs.Parse(args)

	if err := a.requireLogin(); err != nil {
		return err
	}
	manager := controllers.NewAccountManagerController(a.gw, a.accounts, a.flash)
	if err := manager.CreateAccount(*currency); err != nil {
		return err
	}
	manager.Render(os.Stdout)
	return nil
}

func (a *app) transfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	from := fs.Int64("from", 0, "source account id")
	to := fs.Int64("to", 0, "destination account id")
	amount := fs.String("amount", "", "amount in major units, e.g. 12.34")
	currency := fs.String("currency", "", "currency (defaults to the source account's)")
	fs.Parse(args)

	if err := a.requireLogin(); err != nil {
		return err
	}

	form := controllers.NewTransferController(a.gw, a.accounts, a.flash)
	if err := form.Load(); err != nil {
		return err
	}

	// Like the form, the currency follows the source account unless the
	// user insists on one.
	cur := *currency
	if cur == "" {
		cur, _ = form.CurrencyFor(*from)
	}

	input := validator.TransferInput{
		FromAccountID: *from,
		ToAccountID:   *to,
		Amount:        *amount,
		Currency:      cur,
	}
	if err := form.Submit(input); err != nil {
		return err
	}
	form.Render(os.Stdout)
	return nil
}

func (a *app) history(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	account := fs.Int64("account", 0, "account id")
	pages := fs.Int("pages", 1, "number of pages to load")
	fs.Parse(args)

	if err := a.requireLogin(); err != nil {
		return err
	}
	if _, err := a.accounts.Refresh(); err != nil {
		a.flash.ShowError(err)
		return err
	}

	history := controllers.NewTransactionsController(a.gw, a.accounts, a.cfg.PageSize, a.flash)
	history.SelectAccount(*account)
	for i := 0; i < *pages && history.HasMore(); i++ {
		if err := history.LoadMore(); err != nil {
			return err
		}
	}
	history.Render(os.Stdout)
	return nil
}

func (a *app) export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "pdf", "pdf or xlsx")
	outDir := fs.String("out", ".", "output directory")
	account := fs.Int64("account", 0, "account id (0 = all accounts)")
	fs.Parse(args)

	if *format != "pdf" && *format != "xlsx" {
		return fmt.Errorf("unsupported format %q", *format)
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	accounts, err := a.accounts.Refresh()
	if err != nil {
		a.flash.ShowError(err)
		return err
	}
	if *account != 0 {
		selected, ok := a.accounts.Get(*account)
		if !ok {
			return fmt.Errorf("account %d not found", *account)
		}
		accounts = accounts[:0]
		accounts = append(accounts, selected)
	}

	pool := worker.NewPool(a.cfg.ExportWorkers, len(accounts))
	pool.Start()
	defer pool.Shutdown(30 * time.Second)

	exporter := statement.NewExporter(a.gw, a.cfg.PageSize, pool)
	histories, err := exporter.HistoryAll(accounts)
	if err != nil {
		a.flash.ShowError(err)
		return err
	}

	for _, acc := range accounts {
		name := filepath.Join(*outDir, fmt.Sprintf("statement-%d.%s", acc.ID, *format))
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		if *format == "pdf" {
			err = exporter.WritePDF(f, acc, histories[acc.ID])
		} else {
			err = exporter.WriteXLSX(f, acc, histories[acc.ID])
		}
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return err
		}
		fmt.Println("wrote", name)
	}
	return nil
}

func (a *app) whoami() error {
	cred, ok := a.session.Get()
	if !ok {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Println("Username:", cred.Username)

	claims, err := token.Inspect(cred.Token)
	if err != nil {
		fmt.Println("Token: (opaque, not inspectable)")
		return nil
	}
	fmt.Println("Token id:", claims.ID)
	fmt.Println("Issued: ", claims.IssuedAt.Format(time.RFC3339))
	fmt.Println("Expires:", claims.ExpiredAt.Format(time.RFC3339))
	if claims.IsExpired(time.Now()) {
		fmt.Println("Note: token looks expired; the server has the final say.")
	}
	return nil
}

// bench hammers the account listing and dumps the client metrics, useful
// for eyeballing gateway latency against a test server.
func (a *app) bench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	n := fs.Int("n", 50, "number of requests")
	fs.Parse(args)

	if err := a.requireLogin(); err != nil {
		return err
	}

	start := time.Now()
	failures := 0
	for i := 0; i < *n; i++ {
		if _, err := a.gw.ListAccounts(1, a.cfg.PageSize); err != nil {
			failures++
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("%d requests in %v (%d failed)\n", *n, elapsed, failures)

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if family.GetName() == "vaultguard_client_request_duration_seconds" ||
			family.GetName() == "vaultguard_client_requests_total" {
			fmt.Println(family.String())
		}
	}
	return nil
}

func (a *app) requireLogin() error {
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("not logged in - run `vaultguard login` first")
	}
	return nil
}

func printFlash(flash *controllers.Flash) {
	if text, _, ok := flash.Get(); ok {
		fmt.Println(text)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
