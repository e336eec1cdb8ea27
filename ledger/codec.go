package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Records use little-endian fixed-width fields, the layout of the on-chain
// account data they mirror.
const (
	ConfigSize = 67 // tax_rate(2) + owner(32) + exchange_route(32) + paused(1)
	GlobalSize = 24 // total_supply(8) + cum_reward_per_token(16)
	EntrySize  = 24 // last_cum(16) + balance_snapshot(8)
)

// SerializeConfig encodes a Config to its 67-byte layout.
func SerializeConfig(cfg *Config) []byte {
	buf := make([]byte, ConfigSize)
	binary.LittleEndian.PutUint16(buf[0:2], cfg.TaxRateBps)
	copy(buf[2:34], cfg.Owner[:])
	copy(buf[34:66], cfg.ExchangeRoute[:])
	if cfg.Paused {
		buf[66] = 1
	}
	return buf
}

// DeserializeConfig decodes a 67-byte Config.
func DeserializeConfig(data []byte) (*Config, error) {
	if len(data) != ConfigSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidConfigData, ConfigSize, len(data))
	}
	if data[66] > 1 {
		return nil, fmt.Errorf("%w: paused flag %d", ErrInvalidConfigData, data[66])
	}
	cfg := &Config{
		TaxRateBps:    binary.LittleEndian.Uint16(data[0:2]),
		Owner:         solana.PublicKeyFromBytes(data[2:34]),
		ExchangeRoute: solana.PublicKeyFromBytes(data[34:66]),
		Paused:        data[66] == 1,
	}
	return cfg, nil
}

// SerializeGlobal encodes a GlobalState to its 24-byte layout.
func SerializeGlobal(g *GlobalState) []byte {
	buf := make([]byte, GlobalSize)
	binary.LittleEndian.PutUint64(buf[0:8], g.TotalSupply)
	putU128(buf[8:24], g.CumRewardPerToken[0], g.CumRewardPerToken[1])
	return buf
}

// DeserializeGlobal decodes a 24-byte GlobalState.
func DeserializeGlobal(data []byte) (*GlobalState, error) {
	if len(data) != GlobalSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidGlobalData, GlobalSize, len(data))
	}
	g := &GlobalState{TotalSupply: binary.LittleEndian.Uint64(data[0:8])}
	g.CumRewardPerToken[0], g.CumRewardPerToken[1] = getU128(data[8:24])
	return g, nil
}

// SerializeEntry encodes an Entry to its 24-byte layout.
func SerializeEntry(e *Entry) []byte {
	buf := make([]byte, EntrySize)
	putU128(buf[0:16], e.LastCum[0], e.LastCum[1])
	binary.LittleEndian.PutUint64(buf[16:24], e.BalanceSnapshot)
	return buf
}

// DeserializeEntry decodes a 24-byte Entry.
func DeserializeEntry(data []byte) (*Entry, error) {
	if len(data) != EntrySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidEntryData, EntrySize, len(data))
	}
	e := &Entry{BalanceSnapshot: binary.LittleEndian.Uint64(data[16:24])}
	e.LastCum[0], e.LastCum[1] = getU128(data[0:16])
	return e, nil
}

func putU128(buf []byte, lo, hi uint64) {
	binary.LittleEndian.PutUint64(buf[0:8], lo)
	binary.LittleEndian.PutUint64(buf[8:16], hi)
}

func getU128(buf []byte) (lo, hi uint64) {
	return binary.LittleEndian.Uint64(buf[0:8]), binary.LittleEndian.Uint64(buf[8:16])
}
