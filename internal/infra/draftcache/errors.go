package draftcache

import "errors"

var (
	// ErrDraftNotFound возвращается, когда у клиента нет сохранённого черновика
	// (не создавался, истёк по TTL или удалён завершённым бронированием)
	ErrDraftNotFound = errors.New("draftcache: draft not found")

	// ErrEncode возвращается при ошибке сериализации черновика
	ErrEncode = errors.New("draftcache: failed to encode draft")

	// ErrDecode возвращается, когда сохранённый черновик не разбирается
	// Трактуется вызывающими как отсутствие черновика после очистки ключа
	ErrDecode = errors.New("draftcache: failed to decode draft")

	// ErrStorage возвращается при ошибках обращения к Redis
	ErrStorage = errors.New("draftcache: storage error")
)
