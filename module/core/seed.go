package core

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/AppleDinger/Kartavya-Police-App/module/core/domain"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/database"
	"github.com/AppleDinger/Kartavya-Police-App/module/core/internal/repository/database/postgres"
)

// Seeded field officer states.
const (
	SeedSafe           = "safe"
	SeedRisk           = "risk"
	SeedFree           = "free"
	SeedOnLeave        = "on_leave"
	SeedLeaveRequested = "req_leave"
)

const (
	seedZoneRadius = 500.0
	// seedRiskOffset moves risk officers roughly 2km north of their zone.
	seedRiskOffset = 0.02
)

type SeedData struct {
	Photos struct {
		Command string `yaml:"command"`
		Field   string `yaml:"field"`
	} `yaml:"photos"`
	HeadOfficers []string   `yaml:"head_officers"`
	Teams        []SeedTeam `yaml:"teams"`
}

type SeedTeam struct {
	Supervisor string        `yaml:"supervisor"`
	Officers   []SeedOfficer `yaml:"officers"`
}

type SeedOfficer struct {
	Username string  `yaml:"username"`
	Status   string  `yaml:"status"`
	Lat      float64 `yaml:"lat"`
	Lon      float64 `yaml:"lon"`
}

func ParseSeed(r io.Reader) (*SeedData, error) {
	var data SeedData
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		return nil, eris.Wrap(err, "seed: decode yaml")
	}

	for _, team := range data.Teams {
		if team.Supervisor == "" {
			return nil, eris.New("seed: team without supervisor")
		}
		for _, o := range team.Officers {
			switch o.Status {
			case SeedSafe, SeedRisk, SeedFree, SeedOnLeave, SeedLeaveRequested:
			default:
				return nil, eris.Errorf("seed: officer %q has unknown status %q", o.Username, o.Status)
			}
			if err := (domain.Coordinate{Lat: o.Lat, Lon: o.Lon}).Validate(); err != nil {
				return nil, eris.Wrapf(err, "seed: officer %q", o.Username)
			}
		}
	}
	return &data, nil
}

// Migrate creates the schema, dropping every table first when reset is set.
func Migrate(ctx context.Context, db *sql.DB, reset bool) error {
	if reset {
		if err := postgres.Reset(ctx, db); err != nil {
			return err
		}
	}
	return postgres.EnsureSchema(ctx, db)
}

type Seeder struct {
	officers    database.OfficerRepository
	deployments database.DeploymentRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewSeeder(db *sql.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		officers:    postgres.NewOfficerRepo(db),
		deployments: postgres.NewDeploymentRepo(db),
		logger:      logger,
		now:         time.Now,
	}
}

// Seed inserts command staff and field teams. Officers seeded safe or risk
// get an active zone centred on their listed position; risk officers are
// placed outside it.
func (s *Seeder) Seed(ctx context.Context, data *SeedData) error {
	for _, name := range data.HeadOfficers {
		if _, err := s.officers.Create(ctx, &domain.Officer{
			Username:     name,
			Role:         domain.RoleHeadOfficer,
			ProfilePhoto: data.Photos.Command,
			PingsEnabled: true,
		}); err != nil {
			return err
		}
	}

	for _, team := range data.Teams {
		supID, err := s.officers.Create(ctx, &domain.Officer{
			Username:     team.Supervisor,
			Role:         domain.RoleSupervisor,
			ProfilePhoto: data.Photos.Command,
			PingsEnabled: true,
		})
		if err != nil {
			return err
		}

		for _, o := range team.Officers {
			if err := s.seedOfficer(ctx, supID, data.Photos.Field, o); err != nil {
				return err
			}
		}
		s.logger.Info("seeded team", zap.String("supervisor", team.Supervisor), zap.Int("officers", len(team.Officers)))
	}
	return nil
}

func (s *Seeder) seedOfficer(ctx context.Context, supervisorID int64, photo string, o SeedOfficer) error {
	target := domain.Coordinate{Lat: o.Lat, Lon: o.Lon}
	current := target
	if o.Status == SeedRisk {
		current.Lat += seedRiskOffset
	}

	id, err := s.officers.Create(ctx, &domain.Officer{
		Username:       o.Username,
		Role:           domain.RoleFieldOfficer,
		SupervisorID:   &supervisorID,
		Position:       &current,
		IsOnLeave:      o.Status == SeedOnLeave,
		LeaveRequested: o.Status == SeedLeaveRequested,
		ProfilePhoto:   photo,
		PingsEnabled:   true,
	})
	if err != nil {
		return err
	}

	if o.Status != SeedSafe && o.Status != SeedRisk {
		return nil
	}

	if err := s.deployments.ReplaceActive(ctx, &domain.BulkDeployment{
		OfficerIDs:   []int64{id},
		Target:       target,
		RadiusMeters: seedZoneRadius,
	}); err != nil {
		return err
	}
	dep, err := s.deployments.GetActive(ctx, id)
	if err != nil {
		return err
	}
	if dep == nil {
		return eris.Errorf("seed: deployment for %q not stored", o.Username)
	}

	status := domain.DeploymentDeployed
	if o.Status == SeedRisk {
		status = domain.DeploymentOutOfBounds
	}
	return s.deployments.RecordCheckIn(ctx, dep.ID, current, s.now().UTC(), status)
}
