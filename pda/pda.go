// Package pda derives the program addresses that identify the records and
// vaults of a deployment. Every address is seeded with the program id and
// the mint, so one program serves any number of tokens.
package pda

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Seed prefixes.
var (
	SeedConfig         = []byte("config")
	SeedGlobal         = []byte("global")
	SeedTokenVault     = []byte("token_vault")
	SeedVaultAuthority = []byte("vault_authority")
	SeedRewardVault    = []byte("reward_vault")
	SeedUser           = []byte("user")
	SeedAdmin          = []byte("admin")
)

// Deployment holds every fixed address of one mint's deployment.
type Deployment struct {
	Program        solana.PublicKey
	Mint           solana.PublicKey
	Config         solana.PublicKey
	Global         solana.PublicKey
	TokenVault     solana.PublicKey
	VaultAuthority solana.PublicKey
	RewardVault    solana.PublicKey
	Admin          solana.PublicKey
}

// Derive computes the deployment addresses for mint under program.
func Derive(program, mint solana.PublicKey) (*Deployment, error) {
	if err := check(program, mint); err != nil {
		return nil, err
	}
	d := &Deployment{Program: program, Mint: mint}
	targets := []struct {
		seed []byte
		dst  *solana.PublicKey
	}{
		{SeedConfig, &d.Config},
		{SeedGlobal, &d.Global},
		{SeedTokenVault, &d.TokenVault},
		{SeedVaultAuthority, &d.VaultAuthority},
		{SeedRewardVault, &d.RewardVault},
		{SeedAdmin, &d.Admin},
	}
	for _, tgt := range targets {
		addr, _, err := find(program, tgt.seed, program[:], mint[:])
		if err != nil {
			return nil, err
		}
		*tgt.dst = addr
	}
	return d, nil
}

// User derives the ledger entry address of holder for this deployment.
func (d *Deployment) User(holder solana.PublicKey) (solana.PublicKey, error) {
	return UserAddress(d.Program, holder, d.Mint)
}

// ConfigAddress derives the policy record address.
func ConfigAddress(program, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return deriveMint(SeedConfig, program, mint)
}

// GlobalAddress derives the accumulator record address.
func GlobalAddress(program, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return deriveMint(SeedGlobal, program, mint)
}

// TokenVaultAddress derives the vault that collects the token tax.
func TokenVaultAddress(program, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return deriveMint(SeedTokenVault, program, mint)
}

// VaultAuthorityAddress derives the signer that owns both vaults.
func VaultAuthorityAddress(program, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return deriveMint(SeedVaultAuthority, program, mint)
}

// RewardVaultAddress derives the vault that holds swap proceeds.
func RewardVaultAddress(program, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return deriveMint(SeedRewardVault, program, mint)
}

// AdminAddress derives the delegated policy signer.
func AdminAddress(program, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return deriveMint(SeedAdmin, program, mint)
}

// UserAddress derives the ledger entry address of holder.
func UserAddress(program, holder, mint solana.PublicKey) (solana.PublicKey, error) {
	if err := check(program, mint); err != nil {
		return solana.PublicKey{}, err
	}
	addr, _, err := find(program, SeedUser, program[:], holder[:], mint[:])
	return addr, err
}

func deriveMint(seed []byte, program, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := check(program, mint); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return find(program, seed, program[:], mint[:])
}

func find(program solana.PublicKey, prefix []byte, parts ...[]byte) (solana.PublicKey, uint8, error) {
	seeds := make([][]byte, 0, len(parts)+1)
	seeds = append(seeds, prefix)
	seeds = append(seeds, parts...)
	addr, bump, err := solana.FindProgramAddress(seeds, program)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("pda: derive %s: %w", prefix, err)
	}
	return addr, bump, nil
}

func check(program, mint solana.PublicKey) error {
	if program.IsZero() {
		return ErrZeroProgram
	}
	if mint.IsZero() {
		return ErrZeroMint
	}
	return nil
}
