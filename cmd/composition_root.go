package cmd

import (
	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/providerrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. The hub doubles as the
// presence registry and the event publisher, so it is created once here and
// shared by every handler that pushes realtime events.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *ws.Hub
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        ws.NewHub(providerrepo.NewGormProviderRepository(gormDB, noopTracker{})),
	}
}

// Hub returns the shared realtime hub.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

// PresenceRegistry exposes the hub through its presence port for consumers
// that only look presence up.
func (c *CompositionRoot) PresenceRegistry() ports.PresenceRegistry {
	return c.hub
}

func (c *CompositionRoot) CreateCreateBookingCommandHandler() commands.CreateBookingCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateBookingCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateAcceptBookingCommandHandler() commands.AcceptBookingCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptBookingCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateStartServiceCommandHandler() commands.StartServiceCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartServiceCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteServiceCommandHandler() commands.CompleteServiceCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteServiceCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelBookingCommandHandler() commands.CancelBookingCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelBookingCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateRebroadcastPendingBookingsCommandHandler() commands.RebroadcastPendingBookingsCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRebroadcastPendingBookingsCommandHandler(f, c.hub)
}

func (c *CompositionRoot) CreateCreateProviderCommandHandler() commands.CreateProviderCommandHandler {
	var f commands.ProviderUoWFactory = FuncProviderUoWFactory(func() commands.ProviderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateProviderCommandHandler(f)
}

func (c *CompositionRoot) CreateTopUpWalletCommandHandler() commands.TopUpWalletCommandHandler {
	var f commands.ProviderUoWFactory = FuncProviderUoWFactory(func() commands.ProviderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTopUpWalletCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateProviderLocationCommandHandler() commands.UpdateProviderLocationCommandHandler {
	var f commands.ProviderUoWFactory = FuncProviderUoWFactory(func() commands.ProviderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateProviderLocationCommandHandler(f)
}

func (c *CompositionRoot) CreateGetNearbyPendingBookingsQueryHandler() queries.GetNearbyPendingBookingsQueryHandler {
	return queries.NewGetNearbyPendingBookingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOwnerBookingsQueryHandler() queries.GetOwnerBookingsQueryHandler {
	return queries.NewGetOwnerBookingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProviderBookingsQueryHandler() queries.GetProviderBookingsQueryHandler {
	return queries.NewGetProviderBookingsQueryHandler(c.gormDB)
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncProviderUoWFactory func() commands.ProviderUoW

func (f FuncProviderUoWFactory) Create() commands.ProviderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// noopTracker satisfies the repository tracker requirement for read-only
// repository use outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}
