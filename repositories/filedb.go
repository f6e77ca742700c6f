package repositories

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
)

// DefaultLockTimeout — сколько ждать эксклюзивный файловый замок, прежде
// чем вернуть ErrLockTimeout.
const DefaultLockTimeout = 5 * time.Second

const lockRetryInterval = 50 * time.Millisecond

var (
	// ErrLockTimeout — замок не получен за отведённое время. Запись не
	// выполнена; повторная попытка — ответственность вызывающего слоя.
	ErrLockTimeout = errors.New("timed out waiting for file lock")
)

// fileTable инкапсулирует дисциплину работы с одной CSV-таблицей:
// ленивое создание с каноническим заголовком, чтение без замка и запись
// под эксклюзивным flock с атомарной подменой файла. Читатель видит либо
// полностью старый, либо полностью новый файл — границей атомарности
// служит rename.
type fileTable struct {
	path        string
	header      []string
	lockTimeout time.Duration
}

func newFileTable(dir, name string, header []string, lockTimeout time.Duration) *fileTable {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &fileTable{
		path:        filepath.Join(dir, name),
		header:      header,
		lockTimeout: lockTimeout,
	}
}

// load возвращает строки данных таблицы (без заголовка). Отсутствующий
// файл создаётся с каноническим заголовком и читается как пустой. Битое
// содержимое не роняет чтение: одна плохая строка отбрасывается, полностью
// нечитаемый файл трактуется как пустая таблица.
func (t *fileTable) load(ctx context.Context) ([][]string, error) {
	if err := t.ensureExists(ctx); err != nil {
		return nil, err
	}
	f, err := os.Open(t.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(t.path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return [][]string{}, nil
	}
	if len(records) <= 1 {
		return [][]string{}, nil
	}

	rows := make([][]string, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) < len(t.header) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// save пишет заголовок и строки во временный файл и атомарно подменяет
// канонический. Эксклюзивный flock сериализует конкурирующих писателей;
// ожидание ограничено lockTimeout.
func (t *fileTable) save(ctx context.Context, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	unlock, err := acquireLock(ctx, t.path, t.lockTimeout)
	if err != nil {
		return err
	}
	defer unlock()

	return writeFileAtomic(t.path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(t.header); err != nil {
			return err
		}
		if err := w.WriteAll(rows); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	})
}

func (t *fileTable) ensureExists(ctx context.Context) error {
	_, err := os.Stat(t.path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", filepath.Base(t.path), err)
	}
	// Первый запуск: создаём файл той же атомарной записью, чтобы
	// параллельный читатель не увидел полузаписанный заголовок.
	return t.save(ctx, nil)
}

// acquireLock берёт эксклюзивный замок <path>.lock с ограниченным
// ожиданием. Возвращённая функция снимает замок.
func acquireLock(ctx context.Context, path string, timeout time.Duration) (func(), error) {
	lock := flock.New(path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	locked, err := lock.TryLockContext(lockCtx, lockRetryInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, filepath.Base(path))
		}
		return nil, fmt.Errorf("acquire lock for %s: %w", filepath.Base(path), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, filepath.Base(path))
	}
	return func() { _ = lock.Unlock() }, nil
}

// writeFileAtomic выполняет запись в <path>.tmp и заменяет path через
// rename, чтобы конкурирующее чтение никогда не застало частичный файл.
func writeFileAtomic(path string, write func(f *os.File) error) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file for %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file for %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

// atoiOrZero коэрсит кривое число в 0: одна плохая строка не должна
// блокировать загрузку всей таблицы.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
