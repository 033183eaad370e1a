package clientstore

import (
	"context"
	"encoding/json"
	"time"

	"fahasa-storefront/internal/domain/cart"
	"fahasa-storefront/internal/infra"
	"fahasa-storefront/internal/pkg/clock"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/shared"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

const (
	namespaceCart = "cart"
	namespaceAuth = "auth"

	cartRecordVersion = 1
	authRecordVersion = 1
)

// KV is a namespaced byte store with per-entry expiry. Get returns nil, nil for a missing or
// expired key.
type KV interface {
	Get(ctx context.Context, namespace, key string) ([]byte, error)
	Put(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, namespace, key string) error
}

// Store keeps the cart and auth namespaces of every session on top of a KV.
type Store struct {
	kv    KV
	ttl   time.Duration
	clock clock.Clock
}

func NewStore(kv KV, ttl time.Duration, clk clock.Clock) *Store {
	return &Store{kv: kv, ttl: ttl, clock: clk}
}

type lineRecord struct {
	ProductID       string `json:"productId"`
	Title           string `json:"title"`
	ImageURL        string `json:"imageUrl,omitempty"`
	Quantity        int    `json:"quantity"`
	UnitPrice       string `json:"unitPrice"`
	DiscountPercent string `json:"discountPercent"`
	Stock           int    `json:"stock"`
}

type cartRecord struct {
	Version   int          `json:"version"`
	Items     []lineRecord `json:"items"`
	Selected  []string     `json:"selected"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type authRecord struct {
	Version          int       `json:"version"`
	UserID           string    `json:"userId"`
	Email            string    `json:"email"`
	FullName         string    `json:"fullName"`
	Role             string    `json:"role"`
	RefreshTokenHash string    `json:"refreshTokenHash"`
	IssuedAt         time.Time `json:"issuedAt"`
}

var decimalConverters = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(decimal.Decimal).String(), nil
			},
		},
		{
			SrcType: copier.String,
			DstType: decimal.Decimal{},
			Fn: func(src any) (any, error) {
				s := src.(string)
				if s == "" {
					return decimal.Zero, nil
				}
				return decimal.NewFromString(s)
			},
		},
	},
}

func (s *Store) LoadCart(ctx context.Context, sessionID string) (*shared.StoredCart, error) {
	raw, err := s.kv.Get(ctx, namespaceCart, sessionID)
	if err != nil {
		return nil, storeErr("load cart", err)
	}
	if raw == nil {
		return nil, nil
	}

	var rec cartRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, storeErr("decode cart record", infra.WrapRepoErr("decode cart record", err, infra.KindDecodeFailure))
	}
	// unknown versions are treated as absent rather than half-decoded
	if rec.Version != cartRecordVersion {
		return nil, nil
	}

	items := make([]cart.LineItem, 0, len(rec.Items))
	if err := copier.CopyWithOption(&items, &rec.Items, decimalConverters); err != nil {
		return nil, storeErr("convert cart record", err)
	}
	return &shared.StoredCart{
		Items:     items,
		Selected:  rec.Selected,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

func (s *Store) SaveCart(ctx context.Context, sessionID string, state shared.StoredCart) error {
	rec := cartRecord{
		Version:   cartRecordVersion,
		Items:     make([]lineRecord, 0, len(state.Items)),
		Selected:  state.Selected,
		UpdatedAt: state.UpdatedAt,
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = s.clock.Now()
	}
	if rec.Selected == nil {
		rec.Selected = []string{}
	}
	if err := copier.CopyWithOption(&rec.Items, &state.Items, decimalConverters); err != nil {
		return storeErr("convert cart state", err)
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return storeErr("encode cart record", err)
	}
	if err := s.kv.Put(ctx, namespaceCart, sessionID, raw, s.ttl); err != nil {
		return storeErr("save cart", err)
	}
	return nil
}

func (s *Store) DeleteCart(ctx context.Context, sessionID string) error {
	if err := s.kv.Delete(ctx, namespaceCart, sessionID); err != nil {
		return storeErr("delete cart", err)
	}
	return nil
}

func (s *Store) LoadAuth(ctx context.Context, sessionID string) (*shared.AuthState, error) {
	raw, err := s.kv.Get(ctx, namespaceAuth, sessionID)
	if err != nil {
		return nil, storeErr("load auth", err)
	}
	if raw == nil {
		return nil, nil
	}

	var rec authRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, storeErr("decode auth record", infra.WrapRepoErr("decode auth record", err, infra.KindDecodeFailure))
	}
	if rec.Version != authRecordVersion {
		return nil, nil
	}

	var state shared.AuthState
	if err := copier.Copy(&state, &rec); err != nil {
		return nil, storeErr("convert auth record", err)
	}
	return &state, nil
}

func (s *Store) SaveAuth(ctx context.Context, sessionID string, state shared.AuthState) error {
	rec := authRecord{Version: authRecordVersion}
	if err := copier.Copy(&rec, &state); err != nil {
		return storeErr("convert auth state", err)
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return storeErr("encode auth record", err)
	}
	if err := s.kv.Put(ctx, namespaceAuth, sessionID, raw, s.ttl); err != nil {
		return storeErr("save auth", err)
	}
	return nil
}

func (s *Store) DeleteAuth(ctx context.Context, sessionID string) error {
	if err := s.kv.Delete(ctx, namespaceAuth, sessionID); err != nil {
		return storeErr("delete auth", err)
	}
	return nil
}

func storeErr(msg string, err error) error {
	if !infra.IsKind(err, infra.KindDecodeFailure) {
		err = infra.WrapRepoErr(msg, err, infra.KindStoreFailure)
	}
	return errs.Mark(err, errs.ErrStateStoreFailed)
}
