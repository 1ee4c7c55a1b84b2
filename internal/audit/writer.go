package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sink persists audit rows. Implementations must tolerate duplicate entries;
// two concurrent validations of the same address legitimately produce two
// rows.
type Sink interface {
	InsertValidationLog(ctx context.Context, e Entry) error
}

const writeTimeout = 5 * time.Second

// Writer decouples validation responses from audit persistence. Record hands
// the entry to a background goroutine over a bounded channel and returns
// immediately; a slow or failing sink never delays or fails a validation
// call.
type Writer struct {
	sink    Sink
	entries chan Entry
	done    chan struct{}
	log     zerolog.Logger
}

func NewWriter(sink Sink, buffer int, log zerolog.Logger) *Writer {
	return &Writer{
		sink:    sink,
		entries: make(chan Entry, buffer),
		done:    make(chan struct{}),
		log:     log,
	}
}

// Start launches the writer loop. It drains remaining entries when ctx is
// cancelled, then signals completion via Wait.
func (w *Writer) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for {
			select {
			case e := <-w.entries:
				w.persist(e)
			case <-ctx.Done():
				// Best-effort drain so a shutdown does not discard rows that
				// were already accepted.
				for {
					select {
					case e := <-w.entries:
						w.persist(e)
					default:
						return
					}
				}
			}
		}
	}()
}

// Record enqueues an entry without blocking. When the buffer is full the
// entry is dropped: audit logging is best-effort by contract.
func (w *Writer) Record(e Entry) {
	select {
	case w.entries <- e:
	default:
		w.log.Warn().Str("domain", e.Domain).Msg("audit buffer full, dropping entry")
	}
}

// Wait blocks until the writer loop has exited.
func (w *Writer) Wait() {
	<-w.done
}

func (w *Writer) persist(e Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := w.sink.InsertValidationLog(ctx, e); err != nil {
		// Swallowed by contract: a failed audit write must never surface to
		// the validation caller.
		w.log.Error().Err(err).Str("domain", e.Domain).Msg("audit write failed")
	}
}

// NopSink is used when no database is configured; entries are acknowledged
// and discarded.
type NopSink struct{}

func (NopSink) InsertValidationLog(context.Context, Entry) error { return nil }
