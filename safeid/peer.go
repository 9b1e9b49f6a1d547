package safeid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	q "github.com/quic-go/quic-go"

	"github.com/TheusHen/safeid/internal/logger"
	"github.com/TheusHen/safeid/safeid/name"
	"github.com/TheusHen/safeid/safeid/protocol"
	"github.com/TheusHen/safeid/safeid/record"
	"github.com/TheusHen/safeid/safeid/store"
	"github.com/TheusHen/safeid/safeid/transport/quic"
)

const streamTimeout = 10 * time.Second

var (
	ErrNotListening       = errors.New("peer is not listening")
	ErrRejected           = errors.New("peer rejected request")
	ErrUnexpectedResponse = errors.New("peer sent unexpected response")
	ErrKindConflict       = errors.New("name already holds a validated record of another kind")
)

// Sendable is what the routing layer needs from a record: where it lives,
// what kind it is, its bytes and who owns it.
type Sendable interface {
	Address() name.Name
	TypeTag() uint64
	SerialisedBytes() ([]byte, error)
	Owner() (name.Name, bool)
}

// Validator checks that payload is a well-formed record addressed at n.
type Validator func(payload []byte, n name.Name) error

// Peer stores records it receives and serves them back by name.
// Records of a kind with a registered Validator are checked on the way in
// and on the way out; other kinds are stored as opaque bytes.
type Peer struct {
	store      store.Store
	validators map[uint64]Validator
	putMu      sync.Mutex
	listener   *quic.Listener
	log        *slog.Logger
}

func NewPeer(st store.Store) *Peer {
	return &Peer{
		store:      st,
		validators: map[uint64]Validator{record.TypeTag: record.VerifyPayload},
		log:        logger.Logger("peer"),
	}
}

// RegisterValidator must be called before Serve.
func (p *Peer) RegisterValidator(typeTag uint64, v Validator) {
	p.validators[typeTag] = v
}

func (p *Peer) Listen(addr string) error {
	ln, err := quic.Listen(addr)
	if err != nil {
		return err
	}
	p.listener = ln
	return nil
}

func (p *Peer) Close() error {
	if p.listener == nil {
		return nil
	}
	return p.listener.Close()
}

func (p *Peer) ListenAddr() string {
	if p.listener == nil {
		return ""
	}
	return p.listener.AddrString()
}

// Serve accepts connections until ctx is done or the listener is closed.
func (p *Peer) Serve(ctx context.Context) error {
	if p.listener == nil {
		return ErrNotListening
	}
	p.log.Info("serving records", "addr", p.ListenAddr())
	for {
		conn, err := p.listener.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		go p.serveConn(ctx, conn)
	}
}

func (p *Peer) serveConn(ctx context.Context, conn *q.Conn) {
	remote := conn.RemoteAddr().String()
	p.log.Debug("connection accepted", "remote", remote)
	for {
		st, err := conn.AcceptStream(ctx)
		if err != nil {
			p.log.Debug("connection closed", "remote", remote, "err", err)
			return
		}
		go p.serveStream(st)
	}
}

func (p *Peer) serveStream(st *q.Stream) {
	defer st.Close()
	_ = st.SetDeadline(time.Now().Add(streamTimeout))

	req, err := protocol.ReadFrame(st)
	if err != nil {
		p.log.Debug("read request", "err", err)
		return
	}
	if err := protocol.WriteFrame(st, p.handle(req)); err != nil {
		p.log.Debug("write response", "err", err)
	}
}

// handle answers one request frame.
func (p *Peer) handle(req protocol.Frame) protocol.Frame {
	switch req.Type {
	case protocol.MessageTypePut:
		env, err := protocol.DecodeEnvelope(req.Payload)
		if err != nil {
			return protocol.ErrorFrame(protocol.ErrorCodeInvalid, err.Error())
		}
		if err := p.validate(env); err != nil {
			p.log.Warn("rejecting record", "name", env.Name.Short(), "type", env.TypeTag, "err", err)
			return protocol.ErrorFrame(protocol.ErrorCodeInvalid, err.Error())
		}
		if err := p.put(env); err != nil {
			if errors.Is(err, ErrKindConflict) {
				p.log.Warn("rejecting record", "name", env.Name.Short(), "type", env.TypeTag, "err", err)
				return protocol.ErrorFrame(protocol.ErrorCodeInvalid, err.Error())
			}
			p.log.Error("store record", "name", env.Name.Short(), "err", err)
			return protocol.ErrorFrame(protocol.ErrorCodeInternal, err.Error())
		}
		p.log.Info("record stored", "name", env.Name.Short(), "type", env.TypeTag)
		return protocol.Frame{Type: protocol.MessageTypeAck}

	case protocol.MessageTypeGet:
		n, err := protocol.DecodeGet(req.Payload)
		if err != nil {
			return protocol.ErrorFrame(protocol.ErrorCodeInvalid, err.Error())
		}
		entry, err := p.store.Get(n)
		if errors.Is(err, store.ErrNotFound) {
			return protocol.ErrorFrame(protocol.ErrorCodeNotFound, err.Error())
		}
		if err != nil {
			return protocol.ErrorFrame(protocol.ErrorCodeInternal, err.Error())
		}
		payload, err := protocol.EncodeEnvelope(envelopeOf(entry))
		if err != nil {
			return protocol.ErrorFrame(protocol.ErrorCodeInternal, err.Error())
		}
		return protocol.Frame{Type: protocol.MessageTypeValue, Payload: payload}

	default:
		return protocol.ErrorFrame(protocol.ErrorCodeUnsupported, fmt.Sprintf("unsupported message %s", req.Type))
	}
}

// put stores env unless its name already holds a record of a different kind
// that was validated on the way in. Same-kind replacements have passed the
// same validator.
func (p *Peer) put(env protocol.Envelope) error {
	p.putMu.Lock()
	defer p.putMu.Unlock()

	existing, err := p.store.Get(env.Name)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return err
	case existing.TypeTag != env.TypeTag:
		if _, ok := p.validators[existing.TypeTag]; ok {
			return fmt.Errorf("%w: %s is type %d", ErrKindConflict, env.Name.Short(), existing.TypeTag)
		}
	}
	return p.store.Put(store.Entry{
		Name:     env.Name,
		TypeTag:  env.TypeTag,
		Owner:    env.Owner,
		HasOwner: env.HasOwner,
		Payload:  env.Payload,
	})
}

func (p *Peer) validate(env protocol.Envelope) error {
	v, ok := p.validators[env.TypeTag]
	if !ok {
		return nil
	}
	return v(env.Payload, env.Name)
}

// Publish sends s to the peer at addr and waits for it to be stored.
func (p *Peer) Publish(ctx context.Context, addr string, s Sendable) error {
	payload, err := s.SerialisedBytes()
	if err != nil {
		return err
	}
	owner, hasOwner := s.Owner()
	body, err := protocol.EncodeEnvelope(protocol.Envelope{
		TypeTag:  s.TypeTag(),
		Name:     s.Address(),
		Owner:    owner,
		HasOwner: hasOwner,
		Payload:  payload,
	})
	if err != nil {
		return err
	}

	resp, err := roundTrip(ctx, addr, protocol.Frame{Type: protocol.MessageTypePut, Payload: body})
	if err != nil {
		return err
	}
	switch resp.Type {
	case protocol.MessageTypeAck:
		p.log.Debug("record published", "name", s.Address().Short(), "addr", addr)
		return nil
	case protocol.MessageTypeError:
		return responseError(resp)
	default:
		return fmt.Errorf("%w: %s", ErrUnexpectedResponse, resp.Type)
	}
}

// Fetch asks the peer at addr for the record named n. The answer is checked
// against n before it is returned.
func (p *Peer) Fetch(ctx context.Context, addr string, n name.Name) (store.Entry, error) {
	resp, err := roundTrip(ctx, addr, protocol.Frame{Type: protocol.MessageTypeGet, Payload: protocol.EncodeGet(n)})
	if err != nil {
		return store.Entry{}, err
	}
	switch resp.Type {
	case protocol.MessageTypeValue:
	case protocol.MessageTypeError:
		return store.Entry{}, responseError(resp)
	default:
		return store.Entry{}, fmt.Errorf("%w: %s", ErrUnexpectedResponse, resp.Type)
	}

	env, err := protocol.DecodeEnvelope(resp.Payload)
	if err != nil {
		return store.Entry{}, err
	}
	if env.Name != n {
		return store.Entry{}, fmt.Errorf("%w: answer for %s", ErrUnexpectedResponse, env.Name.Short())
	}
	if err := p.validate(env); err != nil {
		return store.Entry{}, err
	}
	return store.Entry{
		Name:     env.Name,
		TypeTag:  env.TypeTag,
		Owner:    env.Owner,
		HasOwner: env.HasOwner,
		Payload:  env.Payload,
	}, nil
}

// FetchRecord is Fetch for an AnMpid: an answer of any other kind is refused,
// so the record validator always runs.
func (p *Peer) FetchRecord(ctx context.Context, addr string, n name.Name) (record.AnMpid, error) {
	entry, err := p.Fetch(ctx, addr, n)
	if err != nil {
		return record.AnMpid{}, err
	}
	if entry.TypeTag != record.TypeTag {
		return record.AnMpid{}, fmt.Errorf("%w: type %d at %s", ErrUnexpectedResponse, entry.TypeTag, n.Short())
	}
	return record.Decode(entry.Payload)
}

func envelopeOf(e store.Entry) protocol.Envelope {
	return protocol.Envelope{
		TypeTag:  e.TypeTag,
		Name:     e.Name,
		Owner:    e.Owner,
		HasOwner: e.HasOwner,
		Payload:  e.Payload,
	}
}

func responseError(resp protocol.Frame) error {
	code, msg := protocol.DecodeError(resp.Payload)
	if code == protocol.ErrorCodeNotFound {
		return store.ErrNotFound
	}
	return fmt.Errorf("%w: %s", ErrRejected, msg)
}

func roundTrip(ctx context.Context, addr string, req protocol.Frame) (protocol.Frame, error) {
	conn, err := quic.Dial(ctx, addr)
	if err != nil {
		return protocol.Frame{}, err
	}
	defer conn.CloseWithError(0, "")

	st, err := conn.OpenStreamSync(ctx)
	if err != nil {
		return protocol.Frame{}, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = st.SetDeadline(deadline)
	}
	if err := protocol.WriteFrame(st, req); err != nil {
		return protocol.Frame{}, err
	}
	// Closing the send side tells the server the request is complete.
	if err := st.Close(); err != nil {
		return protocol.Frame{}, err
	}
	return protocol.ReadFrame(st)
}
