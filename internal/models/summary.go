package models

// CurrencyTotal — суммарная стоимость подписок в одной валюте.
type CurrencyTotal struct {
	Currency string  `json:"currency"`
	Count    int     `json:"count"`
	Monthly  float64 `json:"monthly"` // Эквивалент в месяц
	Yearly   float64 `json:"yearly"`  // Эквивалент в год
}

// Summary — сводка по подпискам пользователя, по валютам в алфавитном порядке.
type Summary struct {
	Count  int             `json:"count"`
	Totals []CurrencyTotal `json:"totals"`
}
