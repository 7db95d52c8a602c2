// Package rewards reads the signed-in visitor's points, tiers and referral code.
package rewards

import (
	"context"
	"fmt"
	"sort"

	"paskoocheh/internal/accounts"
	"paskoocheh/internal/gql"
	"paskoocheh/internal/locale"
	"paskoocheh/internal/routes"
)

type Tier struct {
	Name      string
	Threshold int
}

type Entry struct {
	Reason    string
	Points    int
	CreatedAt string
}

type Referral struct {
	Code  string
	Count int
	// Link is an absolute sign-up URL carrying the code.
	Link string
}

type Summary struct {
	Points   int
	Tier     *Tier
	NextTier *Tier
	// ToNextTier is the number of points still missing for NextTier.
	ToNextTier int
	Tiers      []Tier
	History    []Entry
	Referral   *Referral
}

type Config struct {
	PublicURL       string
	ReferralEnabled bool
}

type Service struct {
	publicURL       string
	referralEnabled bool
}

func NewService(cfg Config) *Service {
	return &Service{publicURL: cfg.PublicURL, referralEnabled: cfg.ReferralEnabled}
}

// Get loads the rewards of the visitor behind client. Anonymous clients get
// accounts.ErrNotSignedIn without a backend call.
func (s *Service) Get(ctx context.Context, client gql.Client, code locale.Code) (Summary, error) {
	if !client.HasAccessToken {
		return Summary{}, accounts.ErrNotSignedIn
	}

	response, err := gql.Rewards(ctx, client)
	if err != nil {
		return Summary{}, fmt.Errorf("rewards: %w", err)
	}
	if response.Rewards == nil {
		return Summary{}, accounts.ErrNotSignedIn
	}

	source := response.Rewards
	summary := Summary{Points: source.Points}

	for _, tier := range source.Tiers {
		summary.Tiers = append(summary.Tiers, Tier{Name: tier.Name, Threshold: tier.Threshold})
	}
	sort.SliceStable(summary.Tiers, func(i, j int) bool {
		return summary.Tiers[i].Threshold < summary.Tiers[j].Threshold
	})

	if source.Tier != nil {
		summary.Tier = &Tier{Name: source.Tier.Name, Threshold: source.Tier.Threshold}
	}
	for _, tier := range summary.Tiers {
		if tier.Threshold > summary.Points {
			next := tier
			summary.NextTier = &next
			summary.ToNextTier = tier.Threshold - summary.Points
			break
		}
	}

	for _, entry := range source.History {
		summary.History = append(summary.History, Entry{
			Reason:    entry.Reason,
			Points:    entry.Points,
			CreatedAt: entry.CreatedAt,
		})
	}

	if s.referralEnabled && source.ReferralCode != nil && *source.ReferralCode != "" {
		summary.Referral = &Referral{
			Code:  *source.ReferralCode,
			Count: source.ReferralCount,
			Link:  routes.Absolute(s.publicURL, routes.SignUp, routes.Args{Locale: code, Referral: *source.ReferralCode}),
		}
	}

	return summary, nil
}
