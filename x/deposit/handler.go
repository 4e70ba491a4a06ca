package deposit

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/coin"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/x"
	"github.com/iov-one/tenor/x/bond"
	"github.com/iov-one/tenor/x/compliance"
	"github.com/iov-one/tenor/x/funds"
	"github.com/iov-one/tenor/x/rates"
	"github.com/iov-one/tenor/x/tier"
	"github.com/iov-one/tenor/x/vault"
)

// RegisterRoutes installs the deposit message handlers. Administrative
// messages are gated by the configured authority; conversion is a
// keeper operation open to any authenticated caller.
func RegisterRoutes(r tenor.Registry, auth x.Authenticator, control funds.Controller) {
	r.Handle(&DepositMsg{}, depositHandler{auth: auth, control: control})
	r.Handle(&CrossDepositMsg{}, crossDepositHandler{auth: auth, control: control})
	r.Handle(&ExecuteConversionMsg{}, convertHandler{auth: auth, control: control})
	r.Handle(&WithdrawMsg{}, withdrawHandler{auth: auth, control: control})
	r.Handle(&ClaimYieldMsg{}, claimHandler{auth: auth, control: control})
	r.Handle(&UpdateConfigMsg{}, updateConfigHandler{auth: auth})
	r.Handle(&PauseMsg{}, pauseHandler{auth: auth})
	r.Handle(&ResumeMsg{}, resumeHandler{auth: auth})
}

// loadActiveConfiguration reads the configuration and rejects a paused
// protocol.
func loadActiveConfiguration(db tenor.ReadOnlyKVStore) (*Configuration, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if !conf.Active {
		return nil, errors.Wrap(ErrNotActive, "protocol paused")
	}
	return conf, nil
}

func loadOrCreatePosition(db tenor.ReadOnlyKVStore, user tenor.Address, t bond.Type, now tenor.UnixTime) (*UserPosition, error) {
	pos, err := LoadPosition(db, user, t)
	if errors.ErrNotFound.Is(err) {
		return &UserPosition{
			Metadata:   &tenor.Metadata{Schema: 1},
			BondType:   t,
			MonthStart: now,
			CreatedAt:  now,
		}, nil
	}
	return pos, err
}

// checkMonthlyLimit verifies the deposit fits the tier's rolling
// allowance. The position's window must be current. Comparing against
// the remaining headroom keeps the check immune to int64 wraparound on
// oversized amounts.
func checkMonthlyLimit(pos *UserPosition, tierLevel uint8, amount int64) error {
	limit := tier.MonthlyLimit(tierLevel, pos.BondType)
	if limit == tier.Unlimited {
		return nil
	}
	if amount > limit-pos.MonthlyDeposited {
		return errors.Wrapf(ErrMonthlyLimit, "%d of %d used, %d requested",
			pos.MonthlyDeposited, limit, amount)
	}
	return nil
}

// bpsOf returns floor(amount * bps / 10000).
func bpsOf(amount int64, bps uint16) (int64, error) {
	v := sdkmath.NewInt(amount).MulRaw(int64(bps)).QuoRaw(10_000)
	if !v.IsInt64() {
		return 0, errors.Wrap(errors.ErrOverflow, "fee")
	}
	return v.Int64(), nil
}

// grossSettlement returns floor(source * RateScale / rate), the
// settlement value of a source amount before fees.
func grossSettlement(source, rate int64) (int64, error) {
	if rate <= 0 {
		return 0, errors.Wrap(rates.ErrInvalidRate, "non-positive rate")
	}
	v := sdkmath.NewInt(source).MulRaw(rates.RateScale).QuoRaw(rate)
	if !v.IsInt64() {
		return 0, errors.Wrap(errors.ErrOverflow, "settlement amount")
	}
	return v.Int64(), nil
}

func saturatingSub(a, b int64) int64 {
	if b >= a {
		return 0
	}
	return a - b
}

// accumulate adds amount to the counter, failing on overflow instead
// of wrapping.
func accumulate(counter *int64, amount int64) error {
	sum := *counter + amount
	if amount > 0 && sum < *counter {
		return errors.Wrap(errors.ErrOverflow, "counter")
	}
	*counter = sum
	return nil
}

type depositHandler struct {
	auth    x.Authenticator
	control funds.Controller
}

var _ tenor.Handler = depositHandler{}

func (h depositHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h depositHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	blockTime, err := tenor.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	now := tenor.AsUnixTime(blockTime)

	conf, err := loadActiveConfiguration(db)
	if err != nil {
		return nil, err
	}
	ys, err := vault.LoadSource(db, msg.BondType)
	if err != nil {
		return nil, err
	}
	if !ys.Active {
		return nil, errors.Wrapf(vault.ErrNotActive, "%s", ys.BondType)
	}
	if msg.Amount < ys.MinDeposit {
		return nil, errors.Wrapf(errors.ErrAmount, "below minimum deposit of %d", ys.MinDeposit)
	}

	tierLevel, err := compliance.Gate(db, signer, now)
	if err != nil {
		return nil, err
	}
	if !tier.Allows(tierLevel, msg.BondType) {
		return nil, errors.Wrapf(compliance.ErrTierTooLow, "%s requires a higher tier", msg.BondType)
	}
	if !tier.AllowsSource(tierLevel, ys.SourceType) {
		return nil, errors.Wrapf(compliance.ErrTierTooLow, "%s sources require a higher tier", ys.SourceType)
	}

	pos, err := loadOrCreatePosition(db, signer, msg.BondType, now)
	if err != nil {
		return nil, err
	}
	pos.maybeResetMonthly(now)
	pos.Tier = tierLevel
	if err := checkMonthlyLimit(pos, tierLevel, msg.Amount); err != nil {
		return nil, err
	}

	shares, err := vault.SharesForValue(msg.Amount, ys.NavPerShare)
	if err != nil {
		return nil, err
	}
	amount := coin.NewCoin(msg.Amount, conf.SettlementTicker)
	if err := h.control.MoveCoins(db, signer, ys.DepositVault, amount); err != nil {
		return nil, err
	}

	if err := accumulate(&ys.TotalDeposited, msg.Amount); err != nil {
		return nil, err
	}
	if err := accumulate(&ys.TotalShares, shares); err != nil {
		return nil, err
	}
	if err := vault.SaveSource(db, ys); err != nil {
		return nil, err
	}

	if err := accumulate(&pos.MonthlyDeposited, msg.Amount); err != nil {
		return nil, err
	}
	if err := accumulate(&pos.TotalDeposited, msg.Amount); err != nil {
		return nil, err
	}
	if err := accumulate(&pos.Shares, shares); err != nil {
		return nil, err
	}
	if err := accumulate(&pos.CostBasis, msg.Amount); err != nil {
		return nil, err
	}
	pos.DepositCount++
	pos.LastDepositAt = now
	if err := SavePosition(db, signer, pos); err != nil {
		return nil, err
	}

	if err := accumulate(&conf.TotalDeposits, msg.Amount); err != nil {
		return nil, err
	}
	conf.UpdatedAt = now
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, err
	}

	return &tenor.DeliverResult{
		Log: fmt.Sprintf("deposited %d into %s for %d shares", msg.Amount, msg.BondType, shares),
	}, nil
}

func (h depositHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*DepositMsg, tenor.Address, error) {
	var msg DepositMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, signer, nil
}

type crossDepositHandler struct {
	auth    x.Authenticator
	control funds.Controller
}

var _ tenor.Handler = crossDepositHandler{}

func (h crossDepositHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h crossDepositHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	blockTime, err := tenor.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	now := tenor.AsUnixTime(blockTime)

	conf, err := loadActiveConfiguration(db)
	if err != nil {
		return nil, err
	}
	tierLevel, err := compliance.Gate(db, signer, now)
	if err != nil {
		return nil, err
	}
	if !tier.Allows(tierLevel, msg.BondType) {
		return nil, errors.Wrapf(compliance.ErrTierTooLow, "%s requires a higher tier", msg.BondType)
	}

	reg, err := bond.LoadRegistry(db)
	if err != nil {
		return nil, err
	}
	bc, err := reg.Find(msg.BondType)
	if err != nil {
		return nil, err
	}
	if !bc.Active {
		return nil, errors.Wrapf(bond.ErrNotActive, "%s", msg.BondType)
	}

	pos, err := loadOrCreatePosition(db, signer, msg.BondType, now)
	if err != nil {
		return nil, err
	}
	pos.maybeResetMonthly(now)
	pos.Tier = tierLevel
	if err := checkMonthlyLimit(pos, tierLevel, msg.Amount); err != nil {
		return nil, err
	}

	amount := coin.NewCoin(msg.Amount, bc.NativeTicker)
	if err := h.control.MoveCoins(db, signer, HoldingVaultAddr(bc.NativeTicker), amount); err != nil {
		return nil, err
	}

	nonce, err := nonceSeq.NextVal(db)
	if err != nil {
		return nil, err
	}
	pending := PendingDeposit{
		Metadata:     &tenor.Metadata{Schema: 1},
		User:         signer,
		BondType:     msg.BondType,
		SourceAmount: msg.Amount,
		MinOutput:    msg.MinOutput,
		DepositedAt:  now,
		ExpiresAt:    now + PendingExpiry,
		Status:       StatusPending,
		Nonce:        nonce,
	}
	if err := SavePending(db, &pending); err != nil {
		return nil, err
	}

	if err := accumulate(&pos.MonthlyDeposited, msg.Amount); err != nil {
		return nil, err
	}
	if err := accumulate(&pos.TotalDeposited, msg.Amount); err != nil {
		return nil, err
	}
	pos.DepositCount++
	pos.LastDepositAt = now
	pos.DepositNonce = nonce
	if err := SavePosition(db, signer, pos); err != nil {
		return nil, err
	}

	if err := accumulate(&conf.PendingConversion, msg.Amount); err != nil {
		return nil, err
	}
	conf.UpdatedAt = now
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, err
	}

	return &tenor.DeliverResult{
		Data: nonceKey(signer, nonce),
		Log:  fmt.Sprintf("pending deposit %d: %d %s for %s", nonce, msg.Amount, bc.NativeTicker, msg.BondType),
	}, nil
}

func (h crossDepositHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*CrossDepositMsg, tenor.Address, error) {
	var msg CrossDepositMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, signer, nil
}

type convertHandler struct {
	auth    x.Authenticator
	control funds.Controller
}

var _ tenor.Handler = convertHandler{}

func (h convertHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h convertHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	blockTime, err := tenor.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	now := tenor.AsUnixTime(blockTime)

	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	pending, err := LoadPending(db, msg.Depositor, msg.Nonce)
	if err != nil {
		return nil, err
	}
	if pending.Status != StatusPending {
		return nil, errors.Wrapf(errors.ErrState, "deposit is %s", pending.Status)
	}
	if now > pending.ExpiresAt {
		return nil, errors.Wrapf(errors.ErrExpired, "pending deposit expired %s", pending.ExpiresAt)
	}

	ys, err := vault.LoadSource(db, pending.BondType)
	if err != nil {
		return nil, err
	}
	if msg.FeedID != ys.OracleFeed {
		return nil, errors.Wrapf(errors.ErrInput, "feed %q does not price %s", msg.FeedID, pending.BondType)
	}
	feed, err := rates.LoadFeed(db, msg.FeedID)
	if err != nil {
		return nil, err
	}
	rate, err := feed.CurrentRate(now)
	if err != nil {
		return nil, err
	}

	gross, err := grossSettlement(pending.SourceAmount, rate)
	if err != nil {
		return nil, err
	}
	fee, err := bpsOf(gross, conf.ConversionFeeBps)
	if err != nil {
		return nil, err
	}
	net := gross - fee
	if net < pending.MinOutput {
		return nil, errors.Wrapf(ErrSlippage, "net %d below minimum %d", net, pending.MinOutput)
	}

	if net > 0 {
		out := coin.NewCoin(net, conf.SettlementTicker)
		if err := h.control.MoveCoins(db, conf.SettlementVault, ys.DepositVault, out); err != nil {
			return nil, err
		}
	}
	if fee > 0 {
		cut := coin.NewCoin(fee, conf.SettlementTicker)
		if err := h.control.MoveCoins(db, conf.SettlementVault, conf.Treasury, cut); err != nil {
			return nil, err
		}
	}

	shares, err := vault.SharesForValue(net, ys.NavPerShare)
	if err != nil {
		return nil, err
	}

	pending.Status = StatusConverted
	pending.ConversionRate = rate
	pending.SettlementReceived = net
	pending.FeePaid = fee
	if err := SavePending(db, pending); err != nil {
		return nil, err
	}

	pos, err := LoadPosition(db, pending.User, pending.BondType)
	if err != nil {
		return nil, err
	}
	if err := accumulate(&pos.Shares, shares); err != nil {
		return nil, err
	}
	if err := accumulate(&pos.CostBasis, net); err != nil {
		return nil, err
	}
	if err := SavePosition(db, pending.User, pos); err != nil {
		return nil, err
	}

	if err := accumulate(&ys.TotalDeposited, net); err != nil {
		return nil, err
	}
	if err := accumulate(&ys.TotalShares, shares); err != nil {
		return nil, err
	}
	if err := vault.SaveSource(db, ys); err != nil {
		return nil, err
	}

	if err := accumulate(&conf.TotalDeposits, net); err != nil {
		return nil, err
	}
	conf.PendingConversion = saturatingSub(conf.PendingConversion, pending.SourceAmount)
	conf.UpdatedAt = now
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, err
	}

	record := ConversionRecord{
		Metadata:         &tenor.Metadata{Schema: 1},
		User:             pending.User,
		BondType:         pending.BondType,
		SourceAmount:     pending.SourceAmount,
		SettlementAmount: net,
		ExchangeRate:     rate,
		FeeAmount:        fee,
		Direction:        NativeToSettlement,
		ExecutedAt:       now,
		Nonce:            pending.Nonce,
	}
	if err := SaveConversion(db, &record); err != nil {
		return nil, err
	}

	return &tenor.DeliverResult{
		Log: fmt.Sprintf("converted %d at rate %d: %d net, %d fee, %d shares",
			pending.SourceAmount, rate, net, fee, shares),
	}, nil
}

func (h convertHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*ExecuteConversionMsg, error) {
	var msg ExecuteConversionMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, nil
}

type withdrawHandler struct {
	auth    x.Authenticator
	control funds.Controller
}

var _ tenor.Handler = withdrawHandler{}

func (h withdrawHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h withdrawHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	blockTime, err := tenor.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	now := tenor.AsUnixTime(blockTime)

	conf, err := loadActiveConfiguration(db)
	if err != nil {
		return nil, err
	}
	pos, err := LoadPosition(db, signer, msg.BondType)
	if err != nil {
		return nil, err
	}
	if msg.Shares > pos.Shares {
		return nil, errors.Wrapf(vault.ErrInsufficientShares, "%d of %d", msg.Shares, pos.Shares)
	}
	ys, err := vault.LoadSource(db, msg.BondType)
	if err != nil {
		return nil, err
	}
	payout, err := vault.ValueForShares(msg.Shares, ys.NavPerShare)
	if err != nil {
		return nil, err
	}

	if payout > 0 {
		out := coin.NewCoin(payout, conf.SettlementTicker)
		if err := h.control.MoveCoins(db, ys.DepositVault, signer, out); err != nil {
			return nil, err
		}
	}

	if err := pos.burnShares(msg.Shares); err != nil {
		return nil, err
	}
	pos.WithdrawalCount++
	pos.LastWithdrawalAt = now
	if err := SavePosition(db, signer, pos); err != nil {
		return nil, err
	}

	ys.TotalShares -= msg.Shares
	ys.TotalDeposited = saturatingSub(ys.TotalDeposited, payout)
	if err := vault.SaveSource(db, ys); err != nil {
		return nil, err
	}

	conf.TotalDeposits = saturatingSub(conf.TotalDeposits, payout)
	conf.UpdatedAt = now
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, err
	}

	return &tenor.DeliverResult{
		Log: fmt.Sprintf("withdrew %d shares from %s for %d", msg.Shares, msg.BondType, payout),
	}, nil
}

func (h withdrawHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*WithdrawMsg, tenor.Address, error) {
	var msg WithdrawMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, signer, nil
}

type claimHandler struct {
	auth    x.Authenticator
	control funds.Controller
}

var _ tenor.Handler = claimHandler{}

func (h claimHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h claimHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	blockTime, err := tenor.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	now := tenor.AsUnixTime(blockTime)

	conf, err := loadActiveConfiguration(db)
	if err != nil {
		return nil, err
	}
	pos, err := LoadPosition(db, signer, msg.BondType)
	if err != nil {
		return nil, err
	}
	ys, err := vault.LoadSource(db, msg.BondType)
	if err != nil {
		return nil, err
	}

	value, err := vault.ValueForShares(pos.Shares, ys.NavPerShare)
	if err != nil {
		return nil, err
	}
	gain := saturatingSub(value, pos.CostBasis)
	claimable := saturatingSub(gain, pos.RealizedYield)
	if claimable == 0 {
		return nil, errors.Wrapf(ErrNoYield, "position worth %d against basis %d", value, pos.CostBasis)
	}

	fee, err := bpsOf(claimable, conf.PerformanceFeeBps)
	if err != nil {
		return nil, err
	}
	net := claimable - fee

	if net > 0 {
		out := coin.NewCoin(net, conf.SettlementTicker)
		if err := h.control.MoveCoins(db, ys.DepositVault, signer, out); err != nil {
			return nil, err
		}
	}
	if fee > 0 {
		cut := coin.NewCoin(fee, conf.SettlementTicker)
		if err := h.control.MoveCoins(db, ys.DepositVault, conf.Treasury, cut); err != nil {
			return nil, err
		}
	}

	if err := accumulate(&pos.RealizedYield, claimable); err != nil {
		return nil, err
	}
	if err := SavePosition(db, signer, pos); err != nil {
		return nil, err
	}

	if err := accumulate(&conf.TotalYieldEarned, claimable); err != nil {
		return nil, err
	}
	conf.UpdatedAt = now
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, err
	}

	return &tenor.DeliverResult{
		Log: fmt.Sprintf("claimed %d yield from %s: %d fee, %d net", claimable, msg.BondType, fee, net),
	}, nil
}

func (h claimHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*ClaimYieldMsg, tenor.Address, error) {
	var msg ClaimYieldMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, signer, nil
}

type updateConfigHandler struct {
	auth x.Authenticator
}

var _ tenor.Handler = updateConfigHandler{}

func (h updateConfigHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h updateConfigHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	blockTime, err := tenor.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	if len(msg.Treasury) != 0 {
		conf.Treasury = msg.Treasury
	}
	if msg.ConversionFeeBps != nil {
		conf.ConversionFeeBps = *msg.ConversionFeeBps
	}
	if msg.ManagementFeeBps != nil {
		conf.ManagementFeeBps = *msg.ManagementFeeBps
	}
	if msg.PerformanceFeeBps != nil {
		conf.PerformanceFeeBps = *msg.PerformanceFeeBps
	}
	conf.UpdatedAt = tenor.AsUnixTime(blockTime)
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, err
	}
	return &tenor.DeliverResult{Log: "updated configuration"}, nil
}

func (h updateConfigHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*UpdateConfigMsg, *Configuration, error) {
	var msg UpdateConfigMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Authority) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not the authority")
	}
	return &msg, conf, nil
}

type pauseHandler struct {
	auth x.Authenticator
}

var _ tenor.Handler = pauseHandler{}

func (h pauseHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h pauseHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	blockTime, err := tenor.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	conf.Active = false
	conf.UpdatedAt = tenor.AsUnixTime(blockTime)
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, err
	}
	return &tenor.DeliverResult{Log: "protocol paused"}, nil
}

func (h pauseHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*Configuration, error) {
	var msg PauseMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the authority")
	}
	return conf, nil
}

type resumeHandler struct {
	auth x.Authenticator
}

var _ tenor.Handler = resumeHandler{}

func (h resumeHandler) Check(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tenor.CheckResult{}, nil
}

func (h resumeHandler) Deliver(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*tenor.DeliverResult, error) {
	conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	blockTime, err := tenor.BlockTime(ctx)
	if err != nil {
		return nil, err
	}
	conf.Active = true
	conf.UpdatedAt = tenor.AsUnixTime(blockTime)
	if err := SaveConfiguration(db, conf); err != nil {
		return nil, err
	}
	return &tenor.DeliverResult{Log: "protocol resumed"}, nil
}

func (h resumeHandler) validate(ctx tenor.Context, db tenor.KVStore, tx tenor.Tx) (*Configuration, error) {
	var msg ResumeMsg
	if err := tenor.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not the authority")
	}
	return conf, nil
}
