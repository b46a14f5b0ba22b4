package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"amparo/internal/app"
	"amparo/internal/config"
	"amparo/internal/db"
	"amparo/internal/migrate"
	"amparo/internal/notify"
	"amparo/internal/repo"
	"amparo/internal/seed"
	"amparo/internal/server"
	"amparo/internal/session"
	"amparo/internal/validate"
)

var rootCmd = &cobra.Command{
	Use:   "amparo",
	Short: "Amparo CLI",
	Long: `Amparo manages a social/vocational support program: participants,
partner companies, staff, trial-period evaluations, parent interviews,
and work placements. Data lives in a record store reachable over REST;
run 'amparo serve' for a local one and 'amparo seed' for starter data.
All data commands require 'amparo login' first.`,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		notify.Error("%v", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("AMPARO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().Bool("force", false, "skip confirmation prompts")
	rootCmd.PersistentFlags().String("store-url", "", "record store base URL (overrides config)")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("force", rootCmd.PersistentFlags().Lookup("force"))
	_ = viper.BindPFlag("store-url", rootCmd.PersistentFlags().Lookup("store-url"))
}

func registerCommands() {
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(usuarioCmd())
	rootCmd.AddCommand(empresaCmd())
	rootCmd.AddCommand(funcionarioCmd())
	rootCmd.AddCommand(avaliacaoCmd())
	rootCmd.AddCommand(entrevistaCmd())
	rootCmd.AddCommand(encaminhamentoCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
}

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the staff collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.Login(email, password); err != nil {
				return err
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if a.Session.Login(ctx, email, password) {
					snap := a.Session.Snapshot()
					notify.Success("logged in as %s", snap.Identity.FullName)
					return nil
				}
				return errors.New(a.Session.Snapshot().Err)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "staff email")
	cmd.Flags().StringVar(&password, "password", "", "staff password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				a.Session.Logout()
				notify.Info("logged out")
				return nil
			})
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				snap := a.Session.Snapshot()
				if !snap.Authenticated {
					return errors.New("not logged in; run 'amparo login'")
				}
				return printJSON(snap.Identity)
			})
		},
	}
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Aggregate program figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthedApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				stats, err := a.Dashboard(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(stats)
				}
				t := newTable()
				t.AppendHeader(table.Row{"Indicador", "Valor"})
				t.AppendRows([]table.Row{
					{"Total de Usuários", stats.TotalUsuarios},
					{"Empresas Parceiras", stats.EmpresasParceiras},
					{"Em Experiência", stats.EmExperiencia},
					{"Encaminhados", stats.Encaminhados},
					{"Funcionários Ativos", stats.FuncionariosAtivos},
				})
				t.Render()
				return nil
			})
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local record store",
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := viper.GetString("workspace")
			cfg, err := config.Load(workspace)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Serve.Addr
			}
			conn, err := db.Open(db.Config{Workspace: workspace})
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := migrate.Migrate(conn); err != nil {
				return err
			}
			handler := server.New(repo.Repo{DB: conn})
			srv := &http.Server{Addr: addr, Handler: handler}
			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()
			fmt.Printf("Serving record store on http://%s\n", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load starter data into an empty local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := viper.GetString("workspace")
			conn, err := db.Open(db.Config{Workspace: workspace})
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := migrate.Migrate(conn); err != nil {
				return err
			}
			if err := seed.Seed(cmd.Context(), repo.Repo{DB: conn}); err != nil {
				return err
			}
			notify.Success("starter data loaded (login: %s / %s)", seed.DefaultAdmin.Email, seed.DefaultAdmin.Password)
			return nil
		},
	}
}

// --- helpers ---

func withApp(ctx context.Context, fn func(context.Context, *app.App) error) error {
	workspace := viper.GetString("workspace")
	cfg, err := config.Load(workspace)
	if err != nil {
		return err
	}
	if override := viper.GetString("store-url"); override != "" {
		cfg.Store.BaseURL = override
	}
	channel, err := session.NewFileChannel(workspace)
	if err != nil {
		return err
	}
	a := app.New(cfg, channel)
	a.Session.Restore()
	return fn(ctx, a)
}

// withAuthedApp gates data commands on a restored session.
func withAuthedApp(ctx context.Context, fn func(context.Context, *app.App) error) error {
	return withApp(ctx, func(ctx context.Context, a *app.App) error {
		if !a.Session.Snapshot().Authenticated {
			return errors.New("not logged in; run 'amparo login'")
		}
		return fn(ctx, a)
	})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	return t
}

// confirm asks before a destructive operation unless --force is set.
func confirm(prompt string) bool {
	if viper.GetBool("force") {
		return true
	}
	fmt.Printf("%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// snapErr turns a container error slot into a command error.
func snapErr(errMsg string) error {
	if errMsg == "" {
		return errors.New("operation failed")
	}
	return errors.New(errMsg)
}
