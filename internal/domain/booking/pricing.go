package booking

import "errors"

var (
	ErrNonPositiveRate = errors.New("hourly rate must be positive")
)

// Fee schedule, in paise. The convenience fee is charged on the discovery
// quote but waived on the confirmation summary, hence the toggle on
// QuoteInput rather than a constant applied everywhere.
const (
	PlayerMatchingFeePaise int64 = 150_00
	ConvenienceFeePaise    int64 = 49_00
	GSTPercent             int64 = 18
)

type QuoteInput struct {
	HourlyRate     Money
	WeekendRate    *Money // optional higher rate for Sat/Sun
	Date           Date
	Duration       Duration
	PlayerMatching bool
	ConvenienceFee bool
}

// Quote is an itemised amount due. Every line is integer paise; rendering to
// two decimals is exact.
type Quote struct {
	Rental         Money
	MatchingFee    Money
	Tax            Money
	ConvenienceFee Money
	Total          Money
}

// NewQuote prices a booking: rental = rate x duration, the flat matching fee
// if the add-on is taken, 18% GST on both, plus the convenience fee where it
// applies. The GST line is the only place rounding occurs (half up).
func NewQuote(in QuoteInput) (Quote, error) {
	if in.HourlyRate.Paise() <= 0 {
		return Quote{}, ErrNonPositiveRate
	}
	if in.Duration.Minutes() <= 0 {
		return Quote{}, ErrInvalidDuration
	}

	rate := in.HourlyRate
	if in.Date.IsWeekend() && in.WeekendRate != nil {
		rate = *in.WeekendRate
	}

	rental := rate.MulDuration(in.Duration)

	var matching Money
	if in.PlayerMatching {
		matching = MustMoney(PlayerMatchingFeePaise)
	}

	taxable := rental.Add(matching)
	tax := taxable.Percent(GSTPercent)

	var convenience Money
	if in.ConvenienceFee {
		convenience = MustMoney(ConvenienceFeePaise)
	}

	total := rental.Add(matching).Add(tax).Add(convenience)

	return Quote{
		Rental:         rental,
		MatchingFee:    matching,
		Tax:            tax,
		ConvenienceFee: convenience,
		Total:          total,
	}, nil
}
