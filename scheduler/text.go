package scheduler

import (
	"fmt"
	"time"
)

// FireText формирует текст уведомления: сколько времени остается до начала
// события в момент срабатывания. До начала события — целое число минут;
// если момент срабатывания не раньше начала (при пропуске прошедших
// напоминаний такого быть не должно) — "starting now".
func FireText(fireAt, startDate time.Time) string {
	if fireAt.Before(startDate) {
		minutes := int(startDate.Sub(fireAt) / time.Minute)
		if minutes == 1 {
			return "starting in 1 minute"
		}
		return fmt.Sprintf("starting in %d minutes", minutes)
	}
	return "starting now"
}
