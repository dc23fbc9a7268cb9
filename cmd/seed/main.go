package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/da-hostinger/planning-admin/backend/internal/config"
	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"github.com/da-hostinger/planning-admin/backend/internal/planning"
	"github.com/da-hostinger/planning-admin/backend/internal/repository"
	"github.com/da-hostinger/planning-admin/backend/internal/seed"
	"github.com/da-hostinger/planning-admin/backend/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type app struct {
	cfg    *config.Config
	dbpool *sql.DB
	repo   *repository.Repository
	rng    *rand.Rand
}

const dateLayout = "2006-01-02"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "seed",
		Short:         "Carga datos de referencia y datos aleatorios en la base de datos",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.dbpool != nil {
				a.dbpool.Close()
			}
		},
	}

	rootCmd.AddCommand(referenceCmd(a))
	rootCmd.AddCommand(usersCmd(a))
	rootCmd.AddCommand(planningCmd(a))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("el seed ha fallado", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func (a *app) init(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("no se pudo leer la configuración: %w", err)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("no se pudo crear el pool de conexiones: %w", err)
	}

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()
	if err := dbpool.PingContext(pingCtx); err != nil {
		dbpool.Close()
		return fmt.Errorf("no se pudo conectar con la base de datos: %w", err)
	}

	a.cfg = cfg
	a.dbpool = dbpool
	a.repo = repository.NewRepository(cfg, dbpool)
	a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))

	if cfg.Database.Migrate {
		return a.repo.RunMigrations(ctx)
	}
	return nil
}

func referenceCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Carga centros, actividades, especialidades y consultas desde un fichero YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := seed.DefaultFixtures
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				data = b
			}

			fixtures, err := seed.ParseFixtures(data)
			if err != nil {
				return err
			}

			_, err = seed.LoadFixtures(cmd.Context(), a.repo, fixtures)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "fichero de fixtures (por defecto, los incluidos en el binario)")
	return cmd
}

func usersCmd(a *app) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Crea usuarios aleatorios de solo lectura con la contraseña SEED_USER_PASSWORD",
		RunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 {
				return fmt.Errorf("número de usuarios no válido: %d", n)
			}

			specialties, err := a.repo.GetAllSpecialties(cmd.Context())
			if err != nil {
				return err
			}

			created := 0
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(a.cfg.Seed.User.Password, a.cfg.Email.UserDomain)
				if err != nil {
					slog.Error("no se pudo generar el usuario", slog.String("error", err.Error()))
					continue
				}
				if len(specialties) > 0 {
					id := specialties[a.rng.Intn(len(specialties))].ID
					user.SpecialtyID = &id
				}

				if err := a.repo.CreateUser(cmd.Context(), user); err != nil {
					slog.Error("no se pudo insertar el usuario", slog.String("email", user.Email), slog.String("error", err.Error()))
					continue
				}
				created++
			}

			slog.Info("usuarios creados", slog.Int("count", created))
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "n", "n", 5, "número de usuarios")
	return cmd
}

func planningCmd(a *app) *cobra.Command {
	var (
		fromStr  string
		toStr    string
		perShift int
	)

	cmd := &cobra.Command{
		Use:   "planning",
		Short: "Genera registros de planning aleatorios para los usuarios activos",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := seedRange(fromStr, toStr, time.Now())
			if err != nil {
				return err
			}
			if err := utils.ValidateRegisterRange(from, to, a.cfg.Planning.MaxRegisterDays); err != nil {
				return err
			}

			catalog, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}

			records, err := seed.RandomPlanningRecords(a.rng, catalog, from, to, perShift)
			if err != nil {
				return err
			}
			if err := a.repo.CreatePlanningRecords(cmd.Context(), records); err != nil {
				return err
			}

			slog.Info("registros de planning creados",
				slog.Int("count", len(records)),
				slog.String("from", from.Format(dateLayout)),
				slog.String("to", to.Format(dateLayout)),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "primer día (YYYY-MM-DD, por defecto el lunes de esta semana)")
	cmd.Flags().StringVar(&toStr, "to", "", "último día (YYYY-MM-DD, por defecto el domingo de esta semana)")
	cmd.Flags().IntVarP(&perShift, "n", "n", 3, "registros por día y turno")
	return cmd
}

// seedRange devuelve el rango pedido; los extremos que faltan se toman de la semana de now.
func seedRange(fromStr, toStr string, now time.Time) (time.Time, time.Time, error) {
	week, err := planning.ResolveRange(planning.ViewWeekly, now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	from, to := week.Start, week.End
	if fromStr != "" {
		if from, err = time.Parse(dateLayout, fromStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--from no válido: %w", err)
		}
	}
	if toStr != "" {
		if to, err = time.Parse(dateLayout, toStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--to no válido: %w", err)
		}
	}
	return from, to, nil
}

func (a *app) catalog(ctx context.Context) (seed.Catalog, error) {
	active := true
	users, err := a.repo.GetAllUsers(ctx, repository.UserFilter{Active: &active})
	if err != nil {
		return seed.Catalog{}, err
	}
	specialties, err := a.repo.GetAllSpecialties(ctx)
	if err != nil {
		return seed.Catalog{}, err
	}
	activities, err := a.repo.GetAllActivities(ctx)
	if err != nil {
		return seed.Catalog{}, err
	}
	centers, err := a.repo.GetAllCenters(ctx)
	if err != nil {
		return seed.Catalog{}, err
	}

	links := make(map[uuid.UUID][]*domain.Activity, len(specialties))
	for _, s := range specialties {
		linked, err := a.repo.GetSpecialtyActivities(ctx, s.ID)
		if err != nil {
			return seed.Catalog{}, err
		}
		links[s.ID] = linked
	}

	consultations, err := a.repo.GetAllConsultations(ctx, repository.ConsultationFilter{})
	if err != nil {
		return seed.Catalog{}, err
	}
	byCenter := make(map[uuid.UUID][]*domain.Consultation)
	for _, co := range consultations {
		if co.IsActive {
			byCenter[co.CenterID] = append(byCenter[co.CenterID], co)
		}
	}

	return seed.Catalog{
		Users:               users,
		Specialties:         specialties,
		Activities:          activities,
		Centers:             centers,
		SpecialtyActivities: links,
		Consultations:       byCenter,
	}, nil
}
