package deposit

import (
	"encoding/binary"

	sdkmath "cosmossdk.io/math"

	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/codec"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/orm"
	"github.com/iov-one/tenor/x/bond"
)

// PendingExpiry is how long a pending deposit stays convertible.
const PendingExpiry = 24 * 60 * 60 // seconds

// monthSeconds is the rolling window of the monthly deposit limits.
const monthSeconds = 30 * 24 * 60 * 60

// Status is the lifecycle state of a pending deposit.
type Status uint8

const (
	StatusPending Status = iota
	StatusConverting
	StatusConverted
	StatusCancelled
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusConverting:
		return "converting"
	case StatusConverted:
		return "converted"
	case StatusCancelled:
		return "cancelled"
	case StatusExpired:
		return "expired"
	default:
		return "invalid"
	}
}

func (s Status) Validate() error {
	if s > StatusExpired {
		return errors.Wrapf(errors.ErrState, "invalid status: %d", s)
	}
	return nil
}

// Direction describes which way a conversion moved value.
type Direction uint8

const (
	NativeToSettlement Direction = iota
	SettlementToNative
)

func (d Direction) String() string {
	switch d {
	case NativeToSettlement:
		return "native-to-settlement"
	case SettlementToNative:
		return "settlement-to-native"
	default:
		return "invalid"
	}
}

// UserPosition tracks one user's holdings in one bond type. There is
// exactly one position per (user, bond type) pair.
type UserPosition struct {
	Metadata *tenor.Metadata
	BondType bond.Type
	// TotalDeposited is the lifetime deposited amount.
	TotalDeposited int64
	// Shares currently held against the bond's yield source.
	Shares int64
	// CostBasis is the settlement value paid for the current shares.
	CostBasis int64
	// RealizedYield is the gross yield already claimed.
	RealizedYield int64
	// Tier observed at the last gated operation.
	Tier uint8
	// MonthlyDeposited counts deposits inside the current window.
	MonthlyDeposited int64
	MonthStart       tenor.UnixTime
	DepositCount     uint32
	WithdrawalCount  uint32
	LastDepositAt    tenor.UnixTime
	LastWithdrawalAt tenor.UnixTime
	// DepositNonce is the nonce of the user's latest pending deposit.
	DepositNonce uint64
	CreatedAt    tenor.UnixTime
}

var _ orm.Model = (*UserPosition)(nil)

func (p *UserPosition) Validate() error {
	if err := p.Metadata.Validate(); err != nil {
		return err
	}
	if err := p.BondType.Validate(); err != nil {
		return err
	}
	if p.Shares < 0 || p.CostBasis < 0 || p.RealizedYield < 0 {
		return errors.Wrap(errors.ErrModel, "negative position")
	}
	if p.TotalDeposited < 0 || p.MonthlyDeposited < 0 {
		return errors.Wrap(errors.ErrModel, "negative deposit totals")
	}
	if p.Tier > 4 {
		return errors.Wrapf(errors.ErrModel, "invalid tier: %d", p.Tier)
	}
	return nil
}

// maybeResetMonthly starts a fresh deposit window when the current one
// is over.
func (p *UserPosition) maybeResetMonthly(now tenor.UnixTime) {
	if int64(now-p.MonthStart) >= monthSeconds {
		p.MonthlyDeposited = 0
		p.MonthStart = now
	}
}

// burnShares removes shares from the position together with their
// proportional slice of cost basis and realized yield, so that an empty
// position carries no stale accounting.
func (p *UserPosition) burnShares(shares int64) error {
	if shares <= 0 || shares > p.Shares {
		return errors.Wrapf(errors.ErrAmount, "cannot burn %d of %d shares", shares, p.Shares)
	}
	basisOut := sdkmath.NewInt(p.CostBasis).MulRaw(shares).QuoRaw(p.Shares)
	realizedOut := sdkmath.NewInt(p.RealizedYield).MulRaw(shares).QuoRaw(p.Shares)
	if !basisOut.IsInt64() || !realizedOut.IsInt64() {
		return errors.Wrap(errors.ErrOverflow, "burn accounting")
	}
	p.Shares -= shares
	p.CostBasis -= basisOut.Int64()
	p.RealizedYield -= realizedOut.Int64()
	if p.Shares == 0 {
		p.CostBasis = 0
		p.RealizedYield = 0
	}
	return nil
}

func (p *UserPosition) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Uint32(p.Metadata.Schema)
	w.Uint8(uint8(p.BondType))
	w.Int64(p.TotalDeposited)
	w.Int64(p.Shares)
	w.Int64(p.CostBasis)
	w.Int64(p.RealizedYield)
	w.Uint8(p.Tier)
	w.Int64(p.MonthlyDeposited)
	w.Int64(int64(p.MonthStart))
	w.Uint32(p.DepositCount)
	w.Uint32(p.WithdrawalCount)
	w.Int64(int64(p.LastDepositAt))
	w.Int64(int64(p.LastWithdrawalAt))
	w.Uint64(p.DepositNonce)
	w.Int64(int64(p.CreatedAt))
	return w.Bytes()
}

func (p *UserPosition) Unmarshal(raw []byte) error {
	r := codec.NewReader(raw)
	p.Metadata = &tenor.Metadata{Schema: r.Uint32()}
	p.BondType = bond.Type(r.Uint8())
	p.TotalDeposited = r.Int64()
	p.Shares = r.Int64()
	p.CostBasis = r.Int64()
	p.RealizedYield = r.Int64()
	p.Tier = r.Uint8()
	p.MonthlyDeposited = r.Int64()
	p.MonthStart = tenor.UnixTime(r.Int64())
	p.DepositCount = r.Uint32()
	p.WithdrawalCount = r.Uint32()
	p.LastDepositAt = tenor.UnixTime(r.Int64())
	p.LastWithdrawalAt = tenor.UnixTime(r.Int64())
	p.DepositNonce = r.Uint64()
	p.CreatedAt = tenor.UnixTime(r.Int64())
	return r.Close()
}

// PendingDeposit is a cross-currency deposit awaiting conversion. The
// source value sits in the holding vault until a keeper converts or the
// deposit expires.
type PendingDeposit struct {
	Metadata *tenor.Metadata
	User     tenor.Address
	BondType bond.Type
	// SourceAmount is in the bond's native currency.
	SourceAmount int64
	// MinOutput is the slippage floor in settlement currency.
	MinOutput   int64
	DepositedAt tenor.UnixTime
	ExpiresAt   tenor.UnixTime
	Status      Status
	// ConversionRate, SettlementReceived and FeePaid are set when the
	// conversion executes.
	ConversionRate     int64
	SettlementReceived int64
	FeePaid            int64
	Nonce              uint64
}

var _ orm.Model = (*PendingDeposit)(nil)

func (d *PendingDeposit) Validate() error {
	if err := d.Metadata.Validate(); err != nil {
		return err
	}
	if err := d.User.Validate(); err != nil {
		return errors.Wrap(err, "user")
	}
	if err := d.BondType.Validate(); err != nil {
		return err
	}
	if d.SourceAmount <= 0 {
		return errors.Wrap(errors.ErrModel, "source amount must be positive")
	}
	if d.MinOutput < 0 {
		return errors.Wrap(errors.ErrModel, "negative min output")
	}
	if err := d.Status.Validate(); err != nil {
		return err
	}
	if d.Nonce == 0 {
		return errors.Wrap(errors.ErrModel, "missing nonce")
	}
	return nil
}

func (d *PendingDeposit) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Uint32(d.Metadata.Schema)
	w.WriteBytes(d.User)
	w.Uint8(uint8(d.BondType))
	w.Int64(d.SourceAmount)
	w.Int64(d.MinOutput)
	w.Int64(int64(d.DepositedAt))
	w.Int64(int64(d.ExpiresAt))
	w.Uint8(uint8(d.Status))
	w.Int64(d.ConversionRate)
	w.Int64(d.SettlementReceived)
	w.Int64(d.FeePaid)
	w.Uint64(d.Nonce)
	return w.Bytes()
}

func (d *PendingDeposit) Unmarshal(raw []byte) error {
	r := codec.NewReader(raw)
	d.Metadata = &tenor.Metadata{Schema: r.Uint32()}
	d.User = tenor.Address(r.ReadBytes())
	d.BondType = bond.Type(r.Uint8())
	d.SourceAmount = r.Int64()
	d.MinOutput = r.Int64()
	d.DepositedAt = tenor.UnixTime(r.Int64())
	d.ExpiresAt = tenor.UnixTime(r.Int64())
	d.Status = Status(r.Uint8())
	d.ConversionRate = r.Int64()
	d.SettlementReceived = r.Int64()
	d.FeePaid = r.Int64()
	d.Nonce = r.Uint64()
	return r.Close()
}

// ConversionRecord is the immutable audit trail of one executed
// conversion.
type ConversionRecord struct {
	Metadata *tenor.Metadata
	User     tenor.Address
	BondType bond.Type
	// SourceAmount is in the bond's native currency.
	SourceAmount int64
	// SettlementAmount is the net amount after fees.
	SettlementAmount int64
	// ExchangeRate is source per settlement scaled by rates.RateScale.
	ExchangeRate int64
	FeeAmount    int64
	Direction    Direction
	ExecutedAt   tenor.UnixTime
	Nonce        uint64
}

var _ orm.Model = (*ConversionRecord)(nil)

func (c *ConversionRecord) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return err
	}
	if err := c.User.Validate(); err != nil {
		return errors.Wrap(err, "user")
	}
	if err := c.BondType.Validate(); err != nil {
		return err
	}
	if c.SourceAmount <= 0 || c.SettlementAmount < 0 || c.ExchangeRate <= 0 || c.FeeAmount < 0 {
		return errors.Wrap(errors.ErrModel, "invalid conversion amounts")
	}
	return nil
}

func (c *ConversionRecord) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Uint32(c.Metadata.Schema)
	w.WriteBytes(c.User)
	w.Uint8(uint8(c.BondType))
	w.Int64(c.SourceAmount)
	w.Int64(c.SettlementAmount)
	w.Int64(c.ExchangeRate)
	w.Int64(c.FeeAmount)
	w.Uint8(uint8(c.Direction))
	w.Int64(int64(c.ExecutedAt))
	w.Uint64(c.Nonce)
	return w.Bytes()
}

func (c *ConversionRecord) Unmarshal(raw []byte) error {
	r := codec.NewReader(raw)
	c.Metadata = &tenor.Metadata{Schema: r.Uint32()}
	c.User = tenor.Address(r.ReadBytes())
	c.BondType = bond.Type(r.Uint8())
	c.SourceAmount = r.Int64()
	c.SettlementAmount = r.Int64()
	c.ExchangeRate = r.Int64()
	c.FeeAmount = r.Int64()
	c.Direction = Direction(r.Uint8())
	c.ExecutedAt = tenor.UnixTime(r.Int64())
	c.Nonce = r.Uint64()
	return r.Close()
}

var (
	positions   = orm.NewModelBucket("position")
	pendings    = orm.NewModelBucket("pending")
	conversions = orm.NewModelBucket("conv")
)

func positionKey(user tenor.Address, t bond.Type) []byte {
	return append(user.Clone(), uint8(t))
}

func nonceKey(user tenor.Address, nonce uint64) []byte {
	key := make([]byte, 0, len(user)+8)
	key = append(key, user...)
	return binary.BigEndian.AppendUint64(key, nonce)
}

// LoadPosition reads the position of a user in one bond type.
func LoadPosition(db tenor.ReadOnlyKVStore, user tenor.Address, t bond.Type) (*UserPosition, error) {
	var p UserPosition
	if err := positions.One(db, positionKey(user, t), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePosition persists the position of a user in one bond type.
func SavePosition(db tenor.KVStore, user tenor.Address, p *UserPosition) error {
	return positions.Put(db, positionKey(user, p.BondType), p)
}

// LoadPending reads one pending deposit by depositor and nonce.
func LoadPending(db tenor.ReadOnlyKVStore, user tenor.Address, nonce uint64) (*PendingDeposit, error) {
	var d PendingDeposit
	if err := pendings.One(db, nonceKey(user, nonce), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// SavePending persists a pending deposit.
func SavePending(db tenor.KVStore, d *PendingDeposit) error {
	return pendings.Put(db, nonceKey(d.User, d.Nonce), d)
}

// LoadConversion reads one conversion record by depositor and nonce.
func LoadConversion(db tenor.ReadOnlyKVStore, user tenor.Address, nonce uint64) (*ConversionRecord, error) {
	var c ConversionRecord
	if err := conversions.One(db, nonceKey(user, nonce), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveConversion persists a conversion record.
func SaveConversion(db tenor.KVStore, c *ConversionRecord) error {
	return conversions.Put(db, nonceKey(c.User, c.Nonce), c)
}
