// Package growth реализует growth accounting поверх потока событий
// активности (пользователь, день, объем). Вычисление чистое: никакого
// обращения к хранилищу, один и тот же код работает и над живой таблицей
// коммитов, и над фикстурой в памяти.
package growth

import (
	"sort"
	"time"

	"repo-growth-service/internal/domain"
)

// Compute строит полный GrowthReport по потоку событий активности.
// Пустой вход дает отчет с пустыми рядами, а не ошибку.
func Compute(events []domain.ActivityEvent) *domain.GrowthReport {
	agg := aggregate(events)

	return &domain.GrowthReport{
		MAU: mauAccounting(agg),
		MRR: mrrAccounting(agg),
		LTV: cohortLTV(agg),
	}
}

// aggregates — свертки активности по периодам и когортные даты пользователей.
type aggregates struct {
	monthly    map[time.Time]map[string]int64
	weekly     map[time.Time]map[string]int64
	firstMonth map[string]time.Time
	firstWeek  map[string]time.Time
}

// aggregate сворачивает события в DAU, затем в WAU и MAU, и определяет
// когортный период каждого пользователя как самый ранний период с
// положительным объемом.
func aggregate(events []domain.ActivityEvent) *aggregates {
	daily := make(map[string]map[time.Time]int64)
	for _, event := range events {
		day := truncDay(event.Day)
		if daily[event.UserID] == nil {
			daily[event.UserID] = make(map[time.Time]int64)
		}
		daily[event.UserID][day] += event.Amount
	}

	agg := &aggregates{
		monthly:    make(map[time.Time]map[string]int64),
		weekly:     make(map[time.Time]map[string]int64),
		firstMonth: make(map[string]time.Time),
		firstWeek:  make(map[string]time.Time),
	}

	for userID, days := range daily {
		for day, amount := range days {
			if amount <= 0 {
				continue
			}

			month := truncMonth(day)
			if agg.monthly[month] == nil {
				agg.monthly[month] = make(map[string]int64)
			}
			agg.monthly[month][userID] += amount

			week := truncWeek(day)
			if agg.weekly[week] == nil {
				agg.weekly[week] = make(map[string]int64)
			}
			agg.weekly[week][userID] += amount

			if first, ok := agg.firstMonth[userID]; !ok || month.Before(first) {
				agg.firstMonth[userID] = month
			}
			if first, ok := agg.firstWeek[userID]; !ok || week.Before(first) {
				agg.firstWeek[userID] = week
			}
		}
	}

	return agg
}

// monthRange возвращает непрерывный диапазон месяцев от первого до
// последнего месяца с данными. Промежуточные месяцы без активности
// входят в диапазон: без них не сходится тождество по churn.
func monthRange(monthly map[time.Time]map[string]int64) []time.Time {
	if len(monthly) == 0 {
		return nil
	}

	var first, last time.Time
	for month := range monthly {
		if first.IsZero() || month.Before(first) {
			first = month
		}
		if last.IsZero() || month.After(last) {
			last = month
		}
	}

	months := make([]time.Time, 0)
	for m := first; !m.After(last); m = addMonth(m) {
		months = append(months, m)
	}
	return months
}

// mauAccounting раскладывает активную аудиторию каждого месяца на
// retained/new/resurrected/churned относительно предыдущего месяца.
// Для первого месяца предыдущее множество считается пустым.
func mauAccounting(agg *aggregates) []domain.MAUPoint {
	points := make([]domain.MAUPoint, 0)

	for _, month := range monthRange(agg.monthly) {
		current := agg.monthly[month]
		previous := agg.monthly[month.AddDate(0, -1, 0)]

		point := domain.MAUPoint{Month: month, Active: int64(len(current))}

		for userID := range current {
			_, wasActive := previous[userID]
			switch {
			case wasActive:
				point.Retained++
			case agg.firstMonth[userID].Equal(month):
				point.New++
			default:
				point.Resurrected++
			}
		}

		for userID := range previous {
			if _, stillActive := current[userID]; !stillActive {
				point.Churned--
			}
		}

		points = append(points, point)
	}

	return points
}

// mrrAccounting — то же разложение, но взвешенное по объему: у оставшихся
// пользователей рост объема попадает в expansion, падение — в contraction.
func mrrAccounting(agg *aggregates) []domain.MRRPoint {
	points := make([]domain.MRRPoint, 0)

	for _, month := range monthRange(agg.monthly) {
		current := agg.monthly[month]
		previous := agg.monthly[month.AddDate(0, -1, 0)]

		point := domain.MRRPoint{Month: month}

		for userID, amount := range current {
			point.Amount += amount

			if agg.firstMonth[userID].Equal(month) {
				point.New += amount
				continue
			}

			prevAmount, wasActive := previous[userID]
			if !wasActive {
				point.Resurrected += amount
				continue
			}

			point.Retained += min(amount, prevAmount)
			if amount > prevAmount {
				point.Expansion += amount - prevAmount
			} else if amount < prevAmount {
				point.Contraction -= prevAmount - amount
			}
		}

		for userID, prevAmount := range previous {
			if _, stillActive := current[userID]; !stillActive {
				point.Churned -= prevAmount
			}
		}

		points = append(points, point)
	}

	return points
}

type cohortCell struct {
	users  int64
	amount int64
}

// cohortLTV группирует пользователей по первой активной неделе и для каждого
// смещения недели считает удержание и накопленную ценность когорты.
func cohortLTV(agg *aggregates) []domain.LTVPoint {
	cells := make(map[time.Time]map[time.Time]*cohortCell)
	for week, users := range agg.weekly {
		for userID, amount := range users {
			cohort := agg.firstWeek[userID]
			if cells[cohort] == nil {
				cells[cohort] = make(map[time.Time]*cohortCell)
			}
			cell := cells[cohort][week]
			if cell == nil {
				cell = &cohortCell{}
				cells[cohort][week] = cell
			}
			cell.users++
			cell.amount += amount
		}
	}

	cohorts := make([]time.Time, 0, len(cells))
	for cohort := range cells {
		cohorts = append(cohorts, cohort)
	}
	sort.Slice(cohorts, func(i, j int) bool { return cohorts[i].Before(cohorts[j]) })

	points := make([]domain.LTVPoint, 0)

	for _, cohort := range cohorts {
		weeks := make([]time.Time, 0, len(cells[cohort]))
		for week := range cells[cohort] {
			weeks = append(weeks, week)
		}
		sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

		var cohortSize int64
		if head := cells[cohort][cohort]; head != nil {
			cohortSize = head.users
		}

		var cumAmount int64
		for _, week := range weeks {
			cell := cells[cohort][week]
			cumAmount += cell.amount

			point := domain.LTVPoint{
				CohortWeek:      cohort,
				ActiveWeek:      week,
				WeeksSinceFirst: weeksBetween(cohort, week),
				ActiveUsers:     cell.users,
				CohortSize:      cohortSize,
				Amount:          cell.amount,
				CumAmount:       cumAmount,
			}
			// Когорта нулевого размера не должна ронять расчет делением
			// на ноль: доли остаются нулевыми.
			if cohortSize > 0 {
				point.RetainedPct = float64(cell.users) / float64(cohortSize)
				point.CumAmountPerUser = float64(cumAmount) / float64(cohortSize)
			}

			points = append(points, point)
		}
	}

	return points
}
