package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/naka-gawa/contrib-graph/internal/domain"
	"github.com/naka-gawa/contrib-graph/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockFetcher is a mock implementation of the gateway.MarkupFetcher interface.
// It allows us to simulate the source site without making real requests.
type mockFetcher struct {
	mock.Mock
}

// FetchMarkup is our mock's implementation of the FetchMarkup method.
func (m *mockFetcher) FetchMarkup(ctx context.Context, path string) (*goquery.Document, error) {
	args := m.Called(ctx, path)
	// We need to handle the case where the returned document is nil (e.g., when an error occurs).
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*goquery.Document), args.Error(1)
}

const landingPath = "/octocat?tab=contributions"

func doc(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return d
}

func yearPath(year string) string {
	return fmt.Sprintf("/octocat?tab=contributions&from=%s-12-01&to=%s-12-31", year, year)
}

func landing(years ...string) string {
	var b strings.Builder
	for _, y := range years {
		fmt.Fprintf(&b, `<a class="js-year-link filter-item" href="/octocat?tab=overview&amp;from=%s-12-01&amp;to=%s-12-31">%s</a>`, y, y, y)
	}
	return b.String()
}

type day struct {
	date  string
	level int
	count int
}

func yearPage(total int, days ...day) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="js-yearly-contributions"><h2>%d contributions in the year</h2><table class="ContributionCalendar-grid"><tr>`, total)
	for i, d := range days {
		fmt.Fprintf(&b, `<td class="ContributionCalendar-day" data-date="%s" data-level="%d" id="c%d"></td>`, d.date, d.level, i)
		fmt.Fprintf(&b, `<span for="c%d">%d contributions on %s</span>`, i, d.count, d.date)
	}
	b.WriteString(`</tr></table></div>`)
	return b.String()
}

func newTestAssembler(t *testing.T, fetcher *mockFetcher) *Assembler {
	t.Helper()
	base, err := url.Parse("https://github.com")
	require.NoError(t, err)
	return NewAssembler(fetcher, parser.New(base, domain.DefaultPalette), log.New(io.Discard, "", 0))
}

func twoYearFetcher(t *testing.T) *mockFetcher {
	fetcher := new(mockFetcher)
	fetcher.On("FetchMarkup", mock.Anything, landingPath).Return(doc(t, landing("2023", "2022")), nil)
	fetcher.On("FetchMarkup", mock.Anything, yearPath("2023")).Return(doc(t, yearPage(7,
		day{"2023-01-01", 1, 2},
		day{"2023-01-02", 2, 5},
	)), nil)
	fetcher.On("FetchMarkup", mock.Anything, yearPath("2022")).Return(doc(t, yearPage(1,
		day{"2022-12-30", 0, 0},
		day{"2022-12-31", 1, 1},
	)), nil)
	return fetcher
}

func TestAssembler_FetchAllYears_Flat(t *testing.T) {
	fetcher := twoYearFetcher(t)
	assembler := newTestAssembler(t, fetcher)

	dataset, err := assembler.FetchAllYears(context.Background(), "octocat", domain.ShapeFlat)
	require.NoError(t, err)

	flat, ok := dataset.(domain.FlatDataset)
	require.True(t, ok)
	assert.Equal(t, []domain.YearSummary{
		{Year: "2023", Total: 7, Range: domain.DateRange{Start: "2023-01-01", End: "2023-01-02"}},
		{Year: "2022", Total: 1, Range: domain.DateRange{Start: "2022-12-30", End: "2022-12-31"}},
	}, flat.Years)

	dates := make([]string, 0, len(flat.Contributions))
	for _, d := range flat.Contributions {
		dates = append(dates, d.Date)
	}
	assert.Equal(t, []string{"2023-01-02", "2023-01-01", "2022-12-31", "2022-12-30"}, dates)

	fetcher.AssertExpectations(t)
}

func TestAssembler_FetchAllYears_Nested(t *testing.T) {
	fetcher := twoYearFetcher(t)
	assembler := newTestAssembler(t, fetcher)

	dataset, err := assembler.FetchAllYears(context.Background(), "octocat", domain.ShapeNested)
	require.NoError(t, err)

	nested, ok := dataset.(domain.NestedDataset)
	require.True(t, ok)
	assert.Equal(t, 7, nested.Years["2023"].Total)
	assert.Equal(t, 1, nested.Years["2022"].Total)
	assert.Equal(t, domain.DayRecord{Date: "2023-01-02", Count: 5, Color: "#40c463", Intensity: 2}, nested.Contributions[2023][1][2])
	assert.Equal(t, domain.DayRecord{Date: "2022-12-31", Count: 1, Color: "#9be9a8", Intensity: 1}, nested.Contributions[2022][12][31])
	assert.Len(t, nested.Contributions[2022][12], 2)

	fetcher.AssertExpectations(t)
}

func TestAssembler_FetchAllYears_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		setup       func(t *testing.T, f *mockFetcher)
		expectedErr error
	}{
		{
			name: "error case - no year filter on landing page",
			setup: func(t *testing.T, f *mockFetcher) {
				f.On("FetchMarkup", mock.Anything, landingPath).Return(doc(t, `<p>empty</p>`), nil)
			},
			expectedErr: domain.ErrNoData,
		},
		{
			name: "error case - landing page fetch fails",
			setup: func(t *testing.T, f *mockFetcher) {
				f.On("FetchMarkup", mock.Anything, landingPath).Return(nil, &domain.FetchError{Path: landingPath, Status: http.StatusNotFound})
			},
			expectedErr: &domain.FetchError{},
		},
		{
			name: "error case - one year returns HTTP 500",
			setup: func(t *testing.T, f *mockFetcher) {
				f.On("FetchMarkup", mock.Anything, landingPath).Return(doc(t, landing("2023", "2022")), nil)
				f.On("FetchMarkup", mock.Anything, yearPath("2023")).Return(doc(t, yearPage(1, day{"2023-01-01", 1, 1})), nil)
				f.On("FetchMarkup", mock.Anything, yearPath("2022")).Return(nil, &domain.FetchError{Path: yearPath("2022"), Status: http.StatusInternalServerError})
			},
			expectedErr: &domain.FetchError{},
		},
		{
			name: "error case - one year has an empty calendar",
			setup: func(t *testing.T, f *mockFetcher) {
				f.On("FetchMarkup", mock.Anything, landingPath).Return(doc(t, landing("2023")), nil)
				f.On("FetchMarkup", mock.Anything, yearPath("2023")).Return(doc(t, yearPage(0)), nil)
			},
			expectedErr: domain.ErrEmptyCalendar,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			tc.setup(t, fetcher)
			assembler := newTestAssembler(t, fetcher)

			dataset, err := assembler.FetchAllYears(context.Background(), "octocat", domain.ShapeFlat)

			assert.Error(t, err)
			assert.Nil(t, dataset)
			var fetchErr *domain.FetchError
			if errors.As(tc.expectedErr, &fetchErr) {
				assert.True(t, errors.As(err, &fetchErr))
			} else {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
			assert.Contains(t, err.Error(), "failed to fetch contributions for octocat")
		})
	}
}

func TestAssembler_FetchAllYears_InvalidShape(t *testing.T) {
	fetcher := twoYearFetcher(t)
	assembler := newTestAssembler(t, fetcher)

	_, err := assembler.FetchAllYears(context.Background(), "octocat", domain.Shape("tree"))
	assert.ErrorIs(t, err, domain.ErrInvalidShape)
}

func TestAssembler_FetchOneYear(t *testing.T) {
	testCases := []struct {
		name        string
		year        string
		landing     string
		expected    domain.YearSummary
		expectedErr error
	}{
		{
			name:     "happy path - exact label match",
			year:     "2022",
			landing:  landing("2023", "2022"),
			expected: domain.YearSummary{Year: "2022", Total: 1, Range: domain.DateRange{Start: "2022-12-30", End: "2022-12-31"}},
		},
		{
			name:        "error case - year not discovered",
			year:        "2021",
			landing:     landing("2023", "2022"),
			expectedErr: domain.ErrYearNotFound,
		},
		{
			name:        "error case - nothing discovered",
			year:        "2023",
			landing:     `<p></p>`,
			expectedErr: domain.ErrNoData,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			fetcher.On("FetchMarkup", mock.Anything, landingPath).Return(doc(t, tc.landing), nil)
			fetcher.On("FetchMarkup", mock.Anything, yearPath("2022")).Return(doc(t, yearPage(1,
				day{"2022-12-30", 0, 0},
				day{"2022-12-31", 1, 1},
			)), nil).Maybe()
			assembler := newTestAssembler(t, fetcher)

			year, err := assembler.FetchOneYear(context.Background(), "octocat", tc.year)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, year.YearSummary)
			assert.Len(t, year.Contributions, 2)
			fetcher.AssertExpectations(t)
		})
	}
}

func TestAssembler_ListYears(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchMarkup", mock.Anything, landingPath).Return(doc(t, landing("2024", "2023")), nil)
	assembler := newTestAssembler(t, fetcher)

	links, err := assembler.ListYears(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, []domain.YearLink{
		{Path: yearPath("2024"), Label: "2024"},
		{Path: yearPath("2023"), Label: "2023"},
	}, links)
}

func TestAssembler_InvalidUsername(t *testing.T) {
	fetcher := new(mockFetcher)
	assembler := newTestAssembler(t, fetcher)

	for _, username := range []string{"", "  ", "a/b", "a?b"} {
		_, err := assembler.ListYears(context.Background(), username)
		assert.ErrorIs(t, err, domain.ErrInvalidIdentity, username)
	}
	fetcher.AssertNotCalled(t, "FetchMarkup", mock.Anything, mock.Anything)
}
