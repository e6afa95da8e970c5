package infra

import (
	"kentekencheck/internal/clientenv"
	"kentekencheck/internal/health"
	"kentekencheck/internal/vehicle"
)

type ContainerDI struct {
	Config            Config
	RepositoryVehicle *vehicle.Repository
	ServiceVehicle    *vehicle.Service
	HandlerVehicle    *vehicle.Handler
	HandlerHealth     *health.Handler
	HandlerClientEnv  *clientenv.Handler
}

func NewContainerDI(config Config) *ContainerDI {
	container := &ContainerDI{Config: config}
	container.buildRepository()
	container.buildService()
	container.buildHandler()
	return container
}

func (c *ContainerDI) buildRepository() {
	c.RepositoryVehicle = vehicle.NewVehicleRepository(c.Config.RdwBaseUrl, c.Config.RdwAppToken, c.Config.RdwTimeout)
}

func (c *ContainerDI) buildService() {
	c.ServiceVehicle = vehicle.NewVehicleService(c.RepositoryVehicle, c.datasets(), vehicle.ParseFailurePolicy(c.Config.FailurePolicy))
}

func (c *ContainerDI) buildHandler() {
	c.HandlerVehicle = vehicle.NewVehicleHandler(c.ServiceVehicle)
	c.HandlerHealth = health.NewHealthHandler(health.Integrations{
		RdwAppToken: c.Config.RdwAppToken != "",
		Supabase:    c.Config.SupabaseUrl != "" && c.Config.SupabaseAnonKey != "",
	})
	c.HandlerClientEnv = clientenv.NewClientEnvHandler(c.Config.SupabaseUrl, c.Config.SupabaseAnonKey)
}

// datasets builds the immutable descriptor set once at startup. The body
// datasets sit behind a toggle because one upstream rejects plate lookups
// against them with a 400.
func (c *ContainerDI) datasets() vehicle.Datasets {
	secondaries := []vehicle.Dataset{
		{Name: vehicle.DatasetBrandstof, Resource: c.Config.ResourceBrandstof},
		{Name: vehicle.DatasetKleur, Resource: c.Config.ResourceKleur},
	}
	if c.Config.RdwIncludeBody {
		secondaries = append(secondaries,
			vehicle.Dataset{Name: vehicle.DatasetCarrosserie, Resource: c.Config.ResourceCarrosserie},
			vehicle.Dataset{Name: vehicle.DatasetCarrosserieSpecifiek, Resource: c.Config.ResourceCarrosserieSpecifiek},
		)
	}
	secondaries = append(secondaries, vehicle.Dataset{Name: vehicle.DatasetAssen, Resource: c.Config.ResourceAssen})

	return vehicle.Datasets{
		Basis:       vehicle.Dataset{Name: vehicle.DatasetBasis, Resource: c.Config.ResourceBasis},
		Secondaries: secondaries,
	}
}
