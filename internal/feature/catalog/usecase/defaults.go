package usecase

import "lifetrack_backend/internal/feature/catalog/domain/entity"

// DefaultCategory はデフォルトカタログの1カテゴリー分の定義です。
type DefaultCategory struct {
	Name    string
	Metrics []MetricDefinition
}

// DefaultCatalog は新規ユーザー向けの固定カタログ（3カテゴリー・7メトリクス）を返します。
func DefaultCatalog() []DefaultCategory {
	return []DefaultCategory{
		{
			Name: "Health",
			Metrics: []MetricDefinition{
				{
					Name:        "Sleep Quality",
					Kind:        entity.KindQualitative,
					MinValue:    1,
					MaxValue:    f(10),
					Description: "How refreshed do you feel? (1-10)",
					ExampleLow:  s("1 = Feeling like a zombie who binge-watched all seasons of everything"),
					ExampleHigh: s("10 = Ready to fight a bear (not recommended)"),
				},
				{
					Name:        "Hours of Sleep",
					Kind:        entity.KindQuantitative,
					MinValue:    0,
					MaxValue:    f(24),
					Description: "How many hours did you sleep? (0-24)",
					Example:     s("Round to nearest quarter hour (e.g., 7.25, 7.5, 7.75)"),
				},
				{
					Name:        "Daily Steps",
					Kind:        entity.KindQuantitative,
					MinValue:    0,
					MaxValue:    f(100000),
					Description: "How many steps did you take today?",
					Example:     s("From your fitness tracker/phone"),
				},
			},
		},
		{
			Name: "Wealth",
			Metrics: []MetricDefinition{
				{
					Name:        "Discretionary Spending",
					Kind:        entity.KindQuantitative,
					MinValue:    0,
					MaxValue:    nil, // unbounded above
					Description: "How much did you spend on non-essentials? ($)",
					Example:     s("That coffee you 'needed' counts!"),
				},
				{
					Name:        "Financial Stress Level",
					Kind:        entity.KindQualitative,
					MinValue:    1,
					MaxValue:    f(10),
					Description: "How stressed are you about money? (1-10)",
					ExampleLow:  s("1 = Living your best budget life"),
					ExampleHigh: s("10 = Considering selling your comic book collection"),
				},
			},
		},
		{
			Name: "Relationships",
			Metrics: []MetricDefinition{
				{
					Name:        "Quality Time",
					Kind:        entity.KindQuantitative,
					MinValue:    0,
					MaxValue:    f(1440),
					Description: "Minutes spent in meaningful interactions",
					Example:     s("Real conversations, not just liking their Instagram posts"),
				},
				{
					Name:        "Social Connection",
					Kind:        entity.KindQualitative,
					MinValue:    1,
					MaxValue:    f(10),
					Description: "How connected do you feel to others? (1-10)",
					ExampleLow:  s("1 = Your plant is your best friend"),
					ExampleHigh: s("10 = You're the main character in everyone's story"),
				},
			},
		},
	}
}

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }
