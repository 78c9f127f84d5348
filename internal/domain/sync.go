package domain

// SyncJob — разовый запрос на синхронизацию истории коммитов репозитория.
// Не персистится, потребляется воркером ровно один раз, при ошибке не
// перезапускается: результат фиксируется в статусе репозитория.
type SyncJob struct {
	RepositoryID int64
	Owner        string
	Name         string
	Token        string
}
