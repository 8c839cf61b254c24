package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"team-management.backend/internal/config"
	"team-management.backend/internal/domain/entities"
	"team-management.backend/internal/infrastructure/datasources/postgres"
	"team-management.backend/internal/infrastructure/repositories"
	"team-management.backend/internal/usecases"
)

type memberCreator interface {
	Create(ctx context.Context, input *entities.TeamMemberInput) (*entities.TeamMember, error)
}

type addMemberDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (memberCreator, io.Closer, error)
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultAddMemberDeps() addMemberDeps {
	return addMemberDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (memberCreator, io.Closer, error) {
			sqlDB, err := postgres.NewConnection(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			db, err := postgres.OpenGorm(sqlDB)
			if err != nil {
				_ = sqlDB.Close()
				return nil, nil, fmt.Errorf("failed to init gorm: %w", err)
			}

			repo := repositories.NewTeamMemberRepository(db)
			uc := usecases.NewTeamMemberUsecase(repo, repositories.NewUnitOfWork(db), nil)
			return uc, sqlDB, nil
		},
		out: os.Stdout,
	}
}

func runAddMember(args []string, deps addMemberDeps) error {
	def := defaultAddMemberDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("add-member", flag.ContinueOnError)
	firstName := fs.String("first-name", "", "first name (required)")
	lastName := fs.String("last-name", "", "last name (required)")
	phone := fs.String("phone", "", "phone number, digits only (required)")
	email := fs.String("email", "", "email address (required)")
	role := fs.String("role", string(entities.TeamMemberSchema.DefaultRole), "admin or regular")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	creator, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	member, err := creator.Create(context.Background(), &entities.TeamMemberInput{
		FirstName:   *firstName,
		LastName:    *lastName,
		PhoneNumber: *phone,
		Email:       *email,
		Role:        entities.Role(*role),
	})
	if err != nil {
		return fmt.Errorf("failed creating team member: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created team member")
	_, _ = fmt.Fprintf(deps.out, "id=%s\n", member.ID.String())
	_, _ = fmt.Fprintf(deps.out, "member=%s\n", member.String())
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", member.Email)
	return nil
}

func main() {
	if err := runAddMember(os.Args[1:], defaultAddMemberDeps()); err != nil {
		log.Fatal(err)
	}
}
