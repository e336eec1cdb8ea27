// Package distributor runs the tax-and-reward operations of every deployment
// served by one program. Each operation is a single store transaction: the
// whole invocation commits or none of it does.
package distributor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"

	"github.com/bitfsorg/taxreward-go/ledger"
	"github.com/bitfsorg/taxreward-go/logger"
	"github.com/bitfsorg/taxreward-go/metrics"
	"github.com/bitfsorg/taxreward-go/pda"
	"github.com/bitfsorg/taxreward-go/store"
	"github.com/bitfsorg/taxreward-go/swap"
	"github.com/bitfsorg/taxreward-go/taxerr"
)

// Operation names used in logs and metrics.
const (
	OpInitialize    = "initialize"
	OpTransfer      = "taxed_transfer"
	OpClaim         = "claim"
	OpSetPolicy     = "set_policy"
	OpRefreshSupply = "refresh_supply"
	OpClose         = "close_entry"
	OpFund          = "fund"
)

// Config holds the collaborators of a Distributor.
type Config struct {
	Logger    *slog.Logger
	Store     store.Store
	Router    swap.Adapter // usually a *swap.Router
	ProgramID solana.PublicKey

	// Authorizer decides who may act as a deployment's owner. When nil the
	// owner key and the deployment's admin address are both accepted.
	Authorizer ledger.Authorizer
}

// Validate checks that the required collaborators are present.
func (c *Config) Validate() error {
	if c.Store == nil {
		return ErrNilStore
	}
	if c.Router == nil {
		return ErrNilRouter
	}
	if c.ProgramID.IsZero() {
		return ErrZeroProgram
	}
	return nil
}

// Distributor executes operations against a Store.
type Distributor struct {
	log     *slog.Logger
	store   store.Store
	router  swap.Adapter
	program solana.PublicKey
	auth    ledger.Authorizer
}

// New creates a Distributor.
func New(cfg Config) (*Distributor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Distributor{
		log:     log,
		store:   cfg.Store,
		router:  cfg.Router,
		program: cfg.ProgramID,
		auth:    cfg.Authorizer,
	}, nil
}

// ProgramID returns the program the deployments are derived under.
func (d *Distributor) ProgramID() solana.PublicKey { return d.program }

// Deployment derives the addresses of mint's deployment.
func (d *Distributor) Deployment(mint solana.PublicKey) (*pda.Deployment, error) {
	dep, err := pda.Derive(d.program, mint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", taxerr.ErrInvalidInstruction, err)
	}
	return dep, nil
}

func (d *Distributor) authorizer(dep *pda.Deployment) ledger.Authorizer {
	if d.auth != nil {
		return d.auth
	}
	return DelegatedAuthority{Admin: dep.Admin}
}

// invocation carries the per-call identity handed to operation bodies.
type invocation struct {
	id  string
	log *slog.Logger
}

// invoke runs fn inside one read-write transaction and records the outcome.
func (d *Distributor) invoke(ctx context.Context, op string, fn func(inv *invocation, tx store.Tx) error) (string, error) {
	inv := &invocation{id: uuid.NewString()}
	inv.log = d.log.With("op", op, "invocation", inv.id)
	start := time.Now()

	err := ctx.Err()
	if err == nil {
		inv.log.Debug("distributor: invocation started")
		err = d.store.Update(func(tx store.Tx) error {
			return fn(inv, tx)
		})
	}

	metrics.InvocationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.InvocationsTotal.WithLabelValues(op, "error").Inc()
		inv.log.Warn("distributor: invocation aborted", "code", taxerr.CodeOf(err).String(), "error", err)
		return inv.id, err
	}
	metrics.InvocationsTotal.WithLabelValues(op, "success").Inc()
	inv.log.Info("distributor: invocation committed", "duration", time.Since(start))
	return inv.id, nil
}

// view runs fn inside a read-only transaction.
func (d *Distributor) view(fn func(tx store.Tx) error) error {
	return d.store.View(fn)
}

func loadConfig(tx store.Tx, mint solana.PublicKey) (*ledger.Config, error) {
	cfg, err := tx.Config(mint)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: mint %s is not initialized", taxerr.ErrInvalidInstruction, mint)
	}
	return cfg, err
}

func loadGlobal(tx store.Tx, mint solana.PublicKey) (*ledger.GlobalState, error) {
	g, err := tx.Global(mint)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: mint %s has no global state", taxerr.ErrInvalidInstruction, mint)
	}
	return g, err
}

func loadEntry(tx store.Tx, mint, holder solana.PublicKey) (*ledger.Entry, error) {
	e, err := tx.Entry(mint, holder)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: no ledger entry for %s", taxerr.ErrInvalidTokenAccount, holder)
	}
	return e, err
}
