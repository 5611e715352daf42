package inventory

import (
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/pixil98/go-fishery/internal/clock"
	"github.com/pixil98/go-fishery/internal/game"
)

// Rand supplies the uniform draw for sale delays.
type Rand interface {
	Float64() float64
}

// SaleConfig bounds how long a listed fish takes to sell.
type SaleConfig struct {
	Min   time.Duration
	Max   time.Duration
	Floor time.Duration
	// MarketingStep is taken off the delay factor per marketing level.
	MarketingStep float64
}

func DefaultSaleConfig() SaleConfig {
	return SaleConfig{
		Min:           20 * time.Second,
		Max:           40 * time.Second,
		Floor:         2 * time.Second,
		MarketingStep: 0.05,
	}
}

// Delay scales a raw sale delay by the marketing level, never going below
// the floor.
func (c SaleConfig) Delay(raw time.Duration, marketing int) time.Duration {
	factor := 1 - float64(marketing)*c.MarketingStep
	return max(time.Duration(math.Round(float64(raw)*factor)), c.Floor)
}

// Inventory owns the caught fish of one session. Items keep their catch
// order. Readiness is never stored: a listed fish is READY whenever it is
// read at or after its deadline.
type Inventory struct {
	mu sync.Mutex

	clock    clock.Clock
	rng      Rand
	sale     SaleConfig
	capacity int

	items []*game.CaughtFish
}

func NewInventory(clk clock.Clock, rng Rand, capacity int, opts ...InventoryOpt) *Inventory {
	inv := &Inventory{
		clock:    clk,
		rng:      rng,
		sale:     DefaultSaleConfig(),
		capacity: capacity,
	}

	for _, opt := range opts {
		opt(inv)
	}

	return inv
}

// SetCapacity changes the maximum size. Items already held above a lowered
// capacity are kept; only further adds are refused.
func (inv *Inventory) SetCapacity(capacity int) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.capacity = capacity
}

func (inv *Inventory) Capacity() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.capacity
}

func (inv *Inventory) Len() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return len(inv.items)
}

// CheckCapacity returns ErrCapacityExceeded when no slot is free.
func (inv *Inventory) CheckCapacity() error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.checkCapacity()
}

func (inv *Inventory) checkCapacity() error {
	if len(inv.items) >= inv.capacity {
		return fmt.Errorf("%w: holding %d of %d", game.ErrCapacityExceeded, len(inv.items), inv.capacity)
	}
	return nil
}

// Add appends a freshly caught fish.
func (inv *Inventory) Add(f *game.CaughtFish) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if err := inv.checkCapacity(); err != nil {
		return err
	}
	if inv.indexOf(f.InstanceId) >= 0 {
		return fmt.Errorf("%w: duplicate instance %s", game.ErrInvalidOperation, f.InstanceId)
	}

	f.Status = game.StatusCaught
	f.ReadyAt = nil
	inv.items = append(inv.items, f)
	return nil
}

// List puts a caught fish up for sale. The marketing level shortens the
// wait. Returns the deadline at which it becomes collectable.
func (inv *Inventory) List(instanceId string, marketing int) (time.Time, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	f, err := inv.find(instanceId)
	if err != nil {
		return time.Time{}, err
	}
	if f.Status != game.StatusCaught {
		return time.Time{}, fmt.Errorf("%w: %s is already %s", game.ErrInvalidOperation, f.SpeciesId, f.StatusAt(inv.clock.Now()))
	}

	raw := inv.sale.Min
	if inv.sale.Max > inv.sale.Min {
		raw += time.Duration(math.Round(inv.rng.Float64() * float64(inv.sale.Max-inv.sale.Min)))
	}
	at := inv.clock.Now().Add(inv.sale.Delay(raw, marketing))

	f.Status = game.StatusListed
	f.ReadyAt = &at
	return at, nil
}

// Collect removes a READY fish and hands it back for pricing.
func (inv *Inventory) Collect(instanceId string) (*game.CaughtFish, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	f, err := inv.find(instanceId)
	if err != nil {
		return nil, err
	}
	if st := f.StatusAt(inv.clock.Now()); st != game.StatusReady {
		return nil, fmt.Errorf("%w: %s is %s, not ready", game.ErrInvalidOperation, f.SpeciesId, st)
	}

	inv.remove(instanceId)
	return f, nil
}

// Discard removes a fish in any status, forfeiting any sale.
func (inv *Inventory) Discard(instanceId string) (*game.CaughtFish, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	f, err := inv.find(instanceId)
	if err != nil {
		return nil, err
	}

	inv.remove(instanceId)
	return f, nil
}

// Get returns a copy of one fish.
func (inv *Inventory) Get(instanceId string) (*game.CaughtFish, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	f, err := inv.find(instanceId)
	if err != nil {
		return nil, err
	}
	return f.Clone(), nil
}

// StatusOf reports the observable status of one fish now.
func (inv *Inventory) StatusOf(instanceId string) (game.SaleStatus, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	f, err := inv.find(instanceId)
	if err != nil {
		return "", err
	}
	return f.StatusAt(inv.clock.Now()), nil
}

// Items returns copies of every fish in catch order, with READY derived
// against the current time.
func (inv *Inventory) Items() []*game.CaughtFish {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	now := inv.clock.Now()
	out := make([]*game.CaughtFish, 0, len(inv.items))
	for _, f := range inv.items {
		c := f.Clone()
		c.Status = f.StatusAt(now)
		out = append(out, c)
	}
	return out
}

// Stored returns copies of every fish as stored, without deriving READY.
func (inv *Inventory) Stored() []*game.CaughtFish {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	out := make([]*game.CaughtFish, 0, len(inv.items))
	for _, f := range inv.items {
		out = append(out, f.Clone())
	}
	return out
}

// Restore replaces the contents with previously stored fish. Capacity is
// not enforced so a save taken under higher upgrades is never truncated.
func (inv *Inventory) Restore(items []*game.CaughtFish) error {
	seen := make(map[string]bool, len(items))
	for _, f := range items {
		if seen[f.InstanceId] {
			return fmt.Errorf("%w: duplicate instance %s", game.ErrInvalidOperation, f.InstanceId)
		}
		seen[f.InstanceId] = true

		switch f.Status {
		case game.StatusCaught:
			if f.ReadyAt != nil {
				return fmt.Errorf("%w: caught fish %s has a ready time", game.ErrInvalidOperation, f.InstanceId)
			}
		case game.StatusListed:
			if f.ReadyAt == nil {
				return fmt.Errorf("%w: listed fish %s has no ready time", game.ErrInvalidOperation, f.InstanceId)
			}
		default:
			return fmt.Errorf("%w: fish %s has unknown status %q", game.ErrInvalidOperation, f.InstanceId, f.Status)
		}
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.items = make([]*game.CaughtFish, 0, len(items))
	for _, f := range items {
		inv.items = append(inv.items, f.Clone())
	}
	return nil
}

func (inv *Inventory) find(instanceId string) (*game.CaughtFish, error) {
	i := inv.indexOf(instanceId)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", game.ErrItemNotFound, instanceId)
	}
	return inv.items[i], nil
}

func (inv *Inventory) indexOf(instanceId string) int {
	return slices.IndexFunc(inv.items, func(f *game.CaughtFish) bool {
		return f.InstanceId == instanceId
	})
}

func (inv *Inventory) remove(instanceId string) {
	inv.items = slices.DeleteFunc(inv.items, func(f *game.CaughtFish) bool {
		return f.InstanceId == instanceId
	})
}
