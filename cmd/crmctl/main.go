// crmctl tareas de operación: migraciones, catálogo de ubicaciones y alta de cuentas.
//
// Uso:
//
//	crmctl migrate
//	crmctl seed-locations --file ubicaciones.csv [--encoding latin1|utf8]
//	crmctl create-account --name "Inmobiliaria Sol" --email admin@sol.es --password ...
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jhoicas/crm-inmobiliario/internal/application/auth"
	"github.com/jhoicas/crm-inmobiliario/internal/application/dto"
	"github.com/jhoicas/crm-inmobiliario/internal/infrastructure/postgres"
	"github.com/jhoicas/crm-inmobiliario/pkg/config"
	"github.com/jhoicas/crm-inmobiliario/pkg/logger"
)

// env recursos compartidos por los subcomandos.
type env struct {
	cfg   *config.Config
	log   *logger.Logger
	store *postgres.Store
}

func open(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	store, err := postgres.Open(ctx, cfg.DB, log.Component("gorm"))
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, store: store}, nil
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "crmctl",
		Short:        "Herramientas de operación del CRM inmobiliario",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(migrateCmd(), seedLocationsCmd(), createAccountCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones del esquema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.store.Close()
			if err := postgres.Migrate(cmd.Context(), e.store.DB()); err != nil {
				return err
			}
			e.log.Info().Msg("migraciones aplicadas")
			return nil
		},
	}
}

func seedLocationsCmd() *cobra.Command {
	var file, encoding string
	cmd := &cobra.Command{
		Use:   "seed-locations",
		Short: "Carga el catálogo global de ubicaciones desde un CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var latin1 bool
			switch encoding {
			case "latin1", "iso-8859-1":
				latin1 = true
			case "utf8", "utf-8":
			default:
				return fmt.Errorf("encoding no soportado: %q", encoding)
			}
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			locs, err := readLocations(f, latin1)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.store.Close()
			repo := postgres.NewLocationRepository(e.store.DB())
			for i := range locs {
				if _, err := repo.FindOrCreate(cmd.Context(), &locs[i]); err != nil {
					return fmt.Errorf("ubicación %q: %w", locs[i].City, err)
				}
			}
			e.log.Info().Int("ubicaciones", len(locs)).Str("file", file).Msg("catálogo cargado")
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "ruta del CSV (barrio;ciudad;provincia[;municipio])")
	cmd.Flags().StringVar(&encoding, "encoding", "latin1", "latin1 | utf8")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func createAccountCmd() *cobra.Command {
	var in dto.SignupRequest
	cmd := &cobra.Command{
		Use:   "create-account",
		Short: "Crea una cuenta con su usuario administrador",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer e.store.Close()
			db := e.store.DB()
			uc := auth.NewAuthUseCase(postgres.NewRepos(db), postgres.NewTxRunner(db),
				auth.NewResolver(nil, e.log.Component("session")),
				auth.JWTConfig{Secret: e.cfg.JWT.Secret, ExpMinutes: e.cfg.JWT.Expiration, Issuer: e.cfg.JWT.Issuer},
				e.log.Component("auth"))
			out, err := uc.Signup(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cuenta %d creada, administrador %s (id %d)\n",
				out.Account.ID, out.User.Email, out.User.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.AccountName, "name", "", "nombre de la agencia")
	cmd.Flags().StringVar(&in.Email, "email", "", "email del administrador")
	cmd.Flags().StringVar(&in.Password, "password", "", "contraseña del administrador")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "Administrador", "nombre del administrador")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "apellidos del administrador")
	for _, f := range []string{"name", "email", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
