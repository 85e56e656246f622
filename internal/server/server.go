package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"sealbid/internal/crypto"
	"sealbid/internal/domain"
	"sealbid/internal/eventlog"
	"sealbid/internal/protocol/match"
)

// Coprocessor is the full confidential-compute surface the daemon exposes:
// verification for the core and the wallet-side capabilities for clients.
type Coprocessor interface {
	domain.Verifier
	domain.PriceVault
}

// Server exposes the negotiation protocol over HTTP with JSON bodies.
type Server struct {
	svc    domain.NegotiationService
	events *eventlog.Log
	coproc Coprocessor
}

// New constructs a Server over the protocol service, its event log, and the
// coprocessor backing it.
func New(svc domain.NegotiationService, events *eventlog.Log, coproc Coprocessor) *Server {
	return &Server{svc: svc, events: events, coproc: coproc}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /sessions", s.handleCreate)
	mux.HandleFunc("POST /sessions/{id}/join", s.handleJoin)
	mux.HandleFunc("POST /sessions/{id}/reveal/buyer", s.handleReveal(true))
	mux.HandleFunc("POST /sessions/{id}/reveal/seller", s.handleReveal(false))
	mux.HandleFunc("GET /sessions/{id}", s.handleGet)
	mux.HandleFunc("GET /sessions/{id}/prices", s.handlePrices)
	mux.HandleFunc("GET /sessions", s.handleList)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("POST /coproc/encrypt", s.handleEncrypt)
	mux.HandleFunc("POST /coproc/ingest", s.handleIngest)
	mux.HandleFunc("POST /coproc/prove", s.handleProve)
	mux.HandleFunc("POST /coproc/verify", s.handleVerify)

	return mux
}

// CreateRequest is the body of POST /sessions.
type CreateRequest struct {
	Requester         domain.PartyID `json:"requester"`
	Ciphertext        []byte         `json:"ciphertext"`
	Proof             []byte         `json:"proof"`
	ProvisionalBuyer  domain.Price   `json:"provisional_buyer"`
	ProvisionalSeller domain.Price   `json:"provisional_seller"`
}

// CreateResponse carries the derived session id.
type CreateResponse struct {
	ID domain.SessionID `json:"id"`
}

// JoinRequest is the body of POST /sessions/{id}/join.
type JoinRequest struct {
	Requester         domain.PartyID `json:"requester"`
	Ciphertext        []byte         `json:"ciphertext"`
	Proof             []byte         `json:"proof"`
	ProvisionalSeller domain.Price   `json:"provisional_seller"`
}

// RevealRequest is the body of the two reveal endpoints.
type RevealRequest struct {
	Requester domain.PartyID `json:"requester"`
	Clear     []byte         `json:"clear"`
	Proof     []byte         `json:"proof"`
}

// RevealResponse reports the revealed value and, when this reveal completed
// the session, the match decision.
type RevealResponse struct {
	Price       domain.Price `json:"price"`
	DealMatched bool         `json:"deal_matched"`
	Final       bool         `json:"final"`
}

// SessionResponse is the full projection plus the derived state name.
type SessionResponse struct {
	domain.Session
	State string `json:"state"`
}

// PricesResponse carries both ciphertext handles.
type PricesResponse struct {
	Buyer  domain.CiphertextHandle `json:"buyer"`
	Seller domain.CiphertextHandle `json:"seller"`
}

// ListResponse is the creation-order id log.
type ListResponse struct {
	IDs []domain.SessionID `json:"ids"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in CreateRequest
	if !decode(w, r, &in) {
		return
	}
	id, err := s.svc.Create(r.Context(), in.Requester, in.Ciphertext, in.Proof,
		in.ProvisionalBuyer, in.ProvisionalSeller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateResponse{ID: id})
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in JoinRequest
	if !decode(w, r, &in) {
		return
	}
	if err := s.svc.Join(r.Context(), id, in.Requester, in.Ciphertext, in.Proof,
		in.ProvisionalSeller); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReveal(asBuyer bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var in RevealRequest
		if !decode(w, r, &in) {
			return
		}

		reveal := s.svc.RevealSellerPrice
		if asBuyer {
			reveal = s.svc.RevealBuyerPrice
		}
		price, err := reveal(r.Context(), id, in.Requester, in.Clear, in.Proof)
		if err != nil {
			writeError(w, err)
			return
		}

		session, err := s.svc.Get(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, RevealResponse{
			Price:       price,
			DealMatched: session.DealMatched,
			Final:       match.StateOf(session) == match.StateFullyRevealed,
		})
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	session, err := s.svc.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{
		Session: session,
		State:   match.StateOf(session).String(),
	})
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	buyer, seller, err := s.svc.EncryptedPrices(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PricesResponse{Buyer: buyer, Seller: seller})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ListResponse{IDs: s.svc.List()})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var since uint64
	if q := r.URL.Query().Get("since"); q != "" {
		v, err := strconv.ParseUint(q, 10, 64)
		if err != nil {
			http.Error(w, "bad since parameter", http.StatusBadRequest)
			return
		}
		since = v
	}
	events := s.events.Since(since)
	if events == nil {
		events = []domain.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": s.svc.IsAvailable()})
}

type coprocEncryptRequest struct {
	Price domain.Price `json:"price"`
}

type coprocCiphertext struct {
	Ciphertext []byte `json:"ciphertext"`
	Proof      []byte `json:"proof"`
}

type coprocHandleRequest struct {
	Handle domain.CiphertextHandle `json:"handle"`
}

type coprocHandleResponse struct {
	Handle domain.CiphertextHandle `json:"handle"`
}

type coprocProveResponse struct {
	Clear []byte `json:"clear"`
	Proof []byte `json:"proof"`
}

type coprocVerifyRequest struct {
	Handle domain.CiphertextHandle `json:"handle"`
	Clear  []byte                  `json:"clear"`
	Proof  []byte                  `json:"proof"`
}

type coprocVerifyResponse struct {
	Price domain.Price `json:"price"`
}

func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	var in coprocEncryptRequest
	if !decode(w, r, &in) {
		return
	}
	ct, proof, err := s.coproc.Encrypt(r.Context(), in.Price)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coprocCiphertext{Ciphertext: ct, Proof: proof})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var in coprocCiphertext
	if !decode(w, r, &in) {
		return
	}
	handle, err := s.coproc.Ingest(r.Context(), in.Ciphertext, in.Proof)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coprocHandleResponse{Handle: handle})
}

func (s *Server) handleProve(w http.ResponseWriter, r *http.Request) {
	var in coprocHandleRequest
	if !decode(w, r, &in) {
		return
	}
	clear, proof, err := s.coproc.Prove(r.Context(), in.Handle)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coprocProveResponse{Clear: clear, Proof: proof})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var in coprocVerifyRequest
	if !decode(w, r, &in) {
		return
	}
	price, err := s.coproc.VerifyReveal(r.Context(), in.Handle, in.Clear, in.Proof)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coprocVerifyResponse{Price: price})
}

func pathID(w http.ResponseWriter, r *http.Request) (domain.SessionID, bool) {
	id, err := crypto.ParseSessionID(r.PathValue("id"))
	if err != nil {
		http.Error(w, "bad session id", http.StatusBadRequest)
		return domain.SessionID{}, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, in any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the protocol error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrAlreadyJoined),
		errors.Is(err, domain.ErrAlreadyRevealed):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidEncryption),
		errors.Is(err, domain.ErrInvalidProof):
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
