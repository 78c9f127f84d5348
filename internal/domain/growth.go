package domain

import "time"

// MAUPoint — разложение месячной активной аудитории за один месяц.
// Инварианты: Active = Retained + New + Resurrected;
// Active предыдущего месяца = Retained + (-Churned). Churned неположителен.
type MAUPoint struct {
	Month       time.Time `json:"month"`
	Active      int64     `json:"active"`
	Retained    int64     `json:"retained"`
	New         int64     `json:"new"`
	Resurrected int64     `json:"resurrected"`
	Churned     int64     `json:"churned"`
}

// MRRPoint — взвешенное по объему разложение за один месяц
// (expansion/contraction учитывают изменение объема у оставшихся).
type MRRPoint struct {
	Month       time.Time `json:"month"`
	Amount      int64     `json:"amount"`
	Retained    int64     `json:"retained"`
	New         int64     `json:"new"`
	Resurrected int64     `json:"resurrected"`
	Expansion   int64     `json:"expansion"`
	Contraction int64     `json:"contraction"`
	Churned     int64     `json:"churned"`
}

// LTVPoint — накопленная ценность недельной когорты на заданном смещении.
// CumAmount не убывает с ростом WeeksSinceFirst внутри одной когорты.
type LTVPoint struct {
	CohortWeek       time.Time `json:"cohort_week"`
	ActiveWeek       time.Time `json:"active_week"`
	WeeksSinceFirst  int       `json:"weeks_since_first"`
	ActiveUsers      int64     `json:"active_users"`
	CohortSize       int64     `json:"cohort_size"`
	RetainedPct      float64   `json:"retained_pct"`
	Amount           int64     `json:"amount"`
	CumAmount        int64     `json:"cum_amount"`
	CumAmountPerUser float64   `json:"cum_amount_per_user"`
}

// GrowthReport — полный результат growth accounting для заданной области.
// Все ряды упорядочены по возрастанию периода; пустая область дает пустые ряды.
type GrowthReport struct {
	MAU []MAUPoint `json:"mau"`
	MRR []MRRPoint `json:"mrr"`
	LTV []LTVPoint `json:"ltv"`
}
