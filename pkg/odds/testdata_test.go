package odds

// pinnacleTotalsPayload is a single allow-listed bookmaker quoting Over/Under 2.5
const pinnacleTotalsPayload = `{
  "id": "7867392310794b77294b542fcf6940cf",
  "sport_key": "soccer_epl",
  "home_team": "Arsenal",
  "away_team": "Chelsea",
  "bookmakers": [
    {
      "key": "pinnacle",
      "title": "Pinnacle",
      "markets": [
        {
          "key": "totals",
          "outcomes": [
            {"name": "Over", "point": 2.5, "price": 1.9},
            {"name": "Under", "point": 2.5, "price": 1.95}
          ]
        }
      ]
    }
  ]
}`

// mixedPayload has both allow-listed bookmakers, a non-listed one and rejected shapes
const mixedPayload = `{
  "bookmakers": [
    {
      "key": "pinnacle",
      "markets": [
        {"key": "totals", "outcomes": [
          {"name": "Over", "point": 2.5, "price": 1.9},
          {"name": "Under", "point": 2.5, "price": 1.95}
        ]},
        {"key": "alternate_totals_cards", "outcomes": [
          {"name": "Over", "point": 3.5, "price": 2.1},
          {"name": "Under", "point": 3.5, "price": 1.7}
        ]},
        {"key": "alternate_totals_corners", "outcomes": [
          {"name": "Over", "point": 11.5, "price": 2.4},
          {"name": "Under", "point": 11.5, "price": 1.5}
        ]}
      ]
    },
    {
      "key": "bet365",
      "markets": [
        {"key": "totals", "outcomes": [
          {"name": "Over", "point": 2.5, "price": 1.85},
          {"name": "Under", "point": 2.5, "price": 2.0}
        ]},
        {"key": "alternate_totals_corners", "outcomes": [
          {"name": "Over", "point": 9.5, "price": 1.8},
          {"name": "Under", "point": 9.5, "price": 1.9}
        ]}
      ]
    },
    {
      "key": "williamhill",
      "markets": [
        {"key": "totals", "outcomes": [
          {"name": "Over", "point": 3.5, "price": 3.1},
          {"name": "Under", "point": 3.5, "price": 1.35}
        ]}
      ]
    }
  ]
}`

func ptr(f float64) *float64 {
	return &f
}
