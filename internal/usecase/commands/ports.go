package commands

import (
	"context"

	"fahasa-storefront/internal/domain/loyalty"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/shared"
)

// remoteErr tags a collaborator failure as a network failure unless it already carries a
// more specific meaning the handler maps on its own.
func remoteErr(err error, op string) error {
	for _, known := range []error{
		errs.ErrNetworkFailure,
		errs.ErrProductNotFound,
		errs.ErrOrderNotFound,
		errs.ErrVoucherNotFound,
		errs.ErrInvalidCredentials,
	} {
		if errs.Is(err, known) {
			return errs.Wrap(err, op)
		}
	}
	return errs.Mark(errs.Wrap(err, op), errs.ErrNetworkFailure)
}

// tierFor resolves the caller's loyalty tier. Guests get no bonus.
func tierFor(ctx context.Context, backend shared.LoyaltyBackend, userID string) (loyalty.Tier, error) {
	if userID == "" {
		return loyalty.NoTier, nil
	}
	info, err := backend.GetUserRankInfo(ctx, userID)
	if err != nil {
		return loyalty.Tier{}, remoteErr(err, "get rank info")
	}
	return info.Tier(), nil
}
