package usecase

import (
	"context"
	"log"

	"github.com/ethereum/go-ethereum/common"

	"poster/domain"
	"poster/interface/exporter"
)

type DiagnosticInteractor struct {
	tokenAddress common.Address
}

func NewDiagnosticInteractor(tokenAddress common.Address) *DiagnosticInteractor {
	return &DiagnosticInteractor{
		tokenAddress: tokenAddress,
	}
}

// Run reads every value the posting workflow depends on and reports them together.
func (interactor *DiagnosticInteractor) Run(ctx context.Context, session *Session) (*domain.DiagnosticReport, error) {
	poster, token, account, err := session.handles()
	if err != nil {
		return nil, err
	}

	report := &domain.DiagnosticReport{
		UserAddress:   account,
		PosterAddress: poster.Address(),
		TokenAddress:  interactor.tokenAddress,
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"poster token address", func() (err error) { report.PosterTokenAddress, err = poster.TokenAddress(ctx); return }},
		{"poster threshold", func() (err error) { report.PosterThreshold, err = poster.Threshold(ctx); return }},
		{"poster owner", func() (err error) { report.PosterOwner, err = poster.Owner(ctx); return }},
		{"token name", func() (err error) { report.TokenName, err = token.Name(ctx); return }},
		{"token symbol", func() (err error) { report.TokenSymbol, err = token.Symbol(ctx); return }},
		{"token balance", func() (err error) { report.UserBalance, err = token.BalanceOf(ctx, account); return }},
		{"token decimals", func() (err error) { report.TokenDecimals, err = token.Decimals(ctx); return }},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			exporter.IncErrorCount()
			log.Printf("🔴 diagnostic failed reading %v - %v\n", step.name, err.Error())
			return nil, err
		}
	}

	return report, nil
}
