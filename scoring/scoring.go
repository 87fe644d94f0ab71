package scoring

import "fmt"

const (
	// BallsPerOver — 6 легальных мячей завершают овер.
	BallsPerOver = 6
	// MaxWickets — больше 10 калиток в innings не бывает.
	MaxWickets = 10
)

// Innings — состояние одной команды в матче. Мячи считаются целым
// счётчиком: никакой десятичной арифметики вида 4.5 + 0.1.
type Innings struct {
	Runs    int
	Wickets int
	Balls   int
}

// ApplyBall возвращает состояние innings после одного легального мяча.
// Калитки ограничены сверху MaxWickets, дальнейший счёт не блокируется —
// остановка innings остаётся на вызывающей стороне. Те же инкременты
// выполняет UPDATE в репозитории матчей; правила меняются в обоих местах
// синхронно.
func (i Innings) ApplyBall(runs int, wicket bool) Innings {
	next := Innings{
		Runs:    i.Runs + runs,
		Wickets: i.Wickets,
		Balls:   i.Balls + 1,
	}
	if wicket && next.Wickets < MaxWickets {
		next.Wickets++
	}
	return next
}

// Overs форматирует счётчик мячей как "целые_оверы.мячи_в_текущем_овере".
func (i Innings) Overs() string {
	return FormatOvers(i.Balls)
}

// Score форматирует innings в привычный вид "runs/wickets (overs overs)".
func (i Innings) Score() string {
	return fmt.Sprintf("%d/%d (%s overs)", i.Runs, i.Wickets, i.Overs())
}

// FormatOvers переводит целое число мячей в строку "w.b", где b ∈ 0..5.
func FormatOvers(balls int) string {
	if balls < 0 {
		balls = 0
	}
	return fmt.Sprintf("%d.%d", balls/BallsPerOver, balls%BallsPerOver)
}

// StrikeRate считает runs/balls*100. Второе значение false, когда мячей
// ещё нет и показатель не определён. Тот же пересчёт с тем же zero-balls
// guard выполняет upsert в репозитории player_performances.
func StrikeRate(runs, balls int) (float64, bool) {
	if balls <= 0 {
		return 0, false
	}
	return float64(runs) / float64(balls) * 100, true
}
