package bond

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/codec"
	"github.com/iov-one/tenor/coin"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/orm"
)

// RegistryCapacity bounds how many bond types can be registered.
const RegistryCapacity = 8

// Config describes the terms of one registered bond type.
type Config struct {
	Metadata *tenor.Metadata
	Type     Type
	// SettlementTicker is the currency deposits settle in.
	SettlementTicker string
	// NativeTicker is the bond's denomination currency.
	NativeTicker string
	// OracleFeed names the price feed quoting native per settlement.
	OracleFeed    string
	CouponRateBps uint16
	// MaturityDate of zero means a rolling instrument.
	MaturityDate  tenor.UnixTime
	FaceValue     int64
	HaircutBps    uint16
	DefaultAPYBps uint16
	MinTier       uint8
	Active        bool
}

func (c *Config) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return err
	}
	if err := c.Type.Validate(); err != nil {
		return err
	}
	if !coin.IsCC(c.SettlementTicker) {
		return errors.Wrapf(errors.ErrModel, "invalid settlement currency: %q", c.SettlementTicker)
	}
	if !coin.IsCC(c.NativeTicker) {
		return errors.Wrapf(errors.ErrModel, "invalid native currency: %q", c.NativeTicker)
	}
	if c.OracleFeed == "" {
		return errors.Wrap(errors.ErrEmpty, "oracle feed")
	}
	if err := c.MaturityDate.Validate(); err != nil {
		return errors.Wrap(err, "maturity date")
	}
	if c.FaceValue < 0 {
		return errors.Wrap(errors.ErrModel, "negative face value")
	}
	if c.MinTier > 4 {
		return errors.Wrapf(errors.ErrModel, "invalid minimum tier: %d", c.MinTier)
	}
	return nil
}

func (c *Config) marshalTo(w *codec.Writer) {
	w.Uint32(c.Metadata.Schema)
	w.Uint8(uint8(c.Type))
	w.String(c.SettlementTicker)
	w.String(c.NativeTicker)
	w.String(c.OracleFeed)
	w.Uint16(c.CouponRateBps)
	w.Int64(int64(c.MaturityDate))
	w.Int64(c.FaceValue)
	w.Uint16(c.HaircutBps)
	w.Uint16(c.DefaultAPYBps)
	w.Uint8(c.MinTier)
	w.Bool(c.Active)
}

func (c *Config) unmarshalFrom(r *codec.Reader) {
	c.Metadata = &tenor.Metadata{Schema: r.Uint32()}
	c.Type = Type(r.Uint8())
	c.SettlementTicker = r.String()
	c.NativeTicker = r.String()
	c.OracleFeed = r.String()
	c.CouponRateBps = r.Uint16()
	c.MaturityDate = tenor.UnixTime(r.Int64())
	c.FaceValue = r.Int64()
	c.HaircutBps = r.Uint16()
	c.DefaultAPYBps = r.Uint16()
	c.MinTier = r.Uint8()
	c.Active = r.Bool()
}

// Registry is the bounded collection of all registered bond types,
// stored as a single record.
type Registry struct {
	Metadata *tenor.Metadata
	// Authority may register new bond types.
	Authority tenor.Address
	Bonds     []Config
}

var _ orm.Model = (*Registry)(nil)

func (r *Registry) Validate() error {
	if err := r.Metadata.Validate(); err != nil {
		return err
	}
	if err := r.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if len(r.Bonds) > RegistryCapacity {
		return errors.Wrapf(errors.ErrModel, "registry over capacity: %d", len(r.Bonds))
	}
	seen := make(map[Type]struct{}, len(r.Bonds))
	for i := range r.Bonds {
		if err := r.Bonds[i].Validate(); err != nil {
			return errors.Wrapf(err, "bond %d", i)
		}
		if _, ok := seen[r.Bonds[i].Type]; ok {
			return errors.Wrapf(errors.ErrModel, "duplicate bond type: %s", r.Bonds[i].Type)
		}
		seen[r.Bonds[i].Type] = struct{}{}
	}
	return nil
}

// Add appends a bond configuration, rejecting duplicates and overflow
// past the registry capacity.
func (r *Registry) Add(c Config) error {
	if len(r.Bonds) >= RegistryCapacity {
		return errors.Wrapf(ErrRegistryFull, "capacity %d", RegistryCapacity)
	}
	for i := range r.Bonds {
		if r.Bonds[i].Type == c.Type {
			return errors.Wrapf(errors.ErrDuplicate, "bond type %s", c.Type)
		}
	}
	r.Bonds = append(r.Bonds, c)
	return nil
}

// Find returns the configuration of the given bond type.
func (r *Registry) Find(t Type) (*Config, error) {
	for i := range r.Bonds {
		if r.Bonds[i].Type == t {
			return &r.Bonds[i], nil
		}
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "bond type %s", t)
}

func (r *Registry) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Uint32(r.Metadata.Schema)
	w.WriteBytes(r.Authority)
	w.Uint8(uint8(len(r.Bonds)))
	for i := range r.Bonds {
		r.Bonds[i].marshalTo(w)
	}
	return w.Bytes()
}

func (r *Registry) Unmarshal(raw []byte) error {
	rd := codec.NewReader(raw)
	r.Metadata = &tenor.Metadata{Schema: rd.Uint32()}
	r.Authority = tenor.Address(rd.ReadBytes())
	n := int(rd.Uint8())
	r.Bonds = make([]Config, n)
	for i := 0; i < n; i++ {
		r.Bonds[i].unmarshalFrom(rd)
	}
	return rd.Close()
}

var registry = orm.NewSingleton("bond")

// LoadRegistry reads the bond registry from the store.
func LoadRegistry(db tenor.ReadOnlyKVStore) (*Registry, error) {
	var r Registry
	if err := registry.Load(db, &r); err != nil {
		return nil, errors.Wrap(err, "bond registry")
	}
	return &r, nil
}

// SaveRegistry persists the bond registry.
func SaveRegistry(db tenor.KVStore, r *Registry) error {
	return registry.Save(db, r)
}
