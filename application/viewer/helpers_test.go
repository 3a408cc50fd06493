package viewer

import "time"

var v0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
