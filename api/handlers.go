package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/assetlab-xyz/go-assetledger/ledger"
)

// assetView is the JSON shape of an asset record.
type assetView struct {
	ID           uint64    `json:"assetId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	AssetType    string    `json:"assetType"`
	GovernmentID string    `json:"governmentId"`
	MetadataRef  string    `json:"metadataRef,omitempty"`
	Owner        string    `json:"owner"`
	Verified     bool      `json:"verified"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func viewOf(a ledger.Asset) assetView {
	return assetView{
		ID:           uint64(a.ID),
		Name:         a.Name,
		Description:  a.Description,
		AssetType:    a.AssetType,
		GovernmentID: a.GovernmentID,
		MetadataRef:  a.MetadataRef,
		Owner:        string(a.Owner),
		Verified:     a.Verified,
		RegisteredAt: a.RegisteredAt,
	}
}

func parseAssetID(w http.ResponseWriter, s string) (ledger.AssetID, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid asset id "+strconv.Quote(s))
		return 0, false
	}
	return ledger.AssetID(id), true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		AssetType    string `json:"assetType"`
		GovernmentID string `json:"governmentId"`
		MetadataRef  string `json:"metadataRef"`
	}
	if !decode(w, r, &req) {
		return
	}

	id, err := s.registry.RegisterAsset(from, ledger.RegisterAssetParams{
		Name:         req.Name,
		Description:  req.Description,
		AssetType:    req.AssetType,
		GovernmentID: req.GovernmentID,
		MetadataRef:  req.MetadataRef,
	})
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uint64{"assetId": uint64(id)})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		AssetID uint64 `json:"assetId"`
	}
	if !decode(w, r, &req) {
		return
	}

	if err := s.registry.VerifyAsset(from, ledger.AssetID(req.AssetID)); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

func (s *Server) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		AssetID  uint64 `json:"assetId"`
		NewOwner string `json:"newOwner"`
	}
	if !decode(w, r, &req) {
		return
	}

	if err := s.registry.TransferOwnership(from, ledger.AssetID(req.AssetID), ledger.Address(req.NewOwner)); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"owner": req.NewOwner})
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request, rawID string) {
	id, ok := parseAssetID(w, rawID)
	if !ok {
		return
	}
	a, err := s.registry.GetAsset(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(a))
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	owner := ledger.Address(r.URL.Query().Get("owner"))
	if owner.IsZero() {
		writeError(w, http.StatusBadRequest, "validation", "missing owner parameter")
		return
	}

	views := []assetView{}
	for _, id := range s.registry.AssetsOf(owner) {
		a, err := s.registry.GetAsset(id)
		if err != nil {
			continue
		}
		views = append(views, viewOf(a))
	}
	writeJSON(w, http.StatusOK, map[string]any{"assets": views})
}

func (s *Server) handleMintTokens(w http.ResponseWriter, r *http.Request) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		To      string `json:"to"`
		AssetID uint64 `json:"assetId"`
		Amount  string `json:"amount"`
	}
	if !decode(w, r, &req) {
		return
	}
	amount, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if err := s.token.MintTokens(from, ledger.Address(req.To), ledger.AssetID(req.AssetID), amount); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"balance": s.token.BalanceOf(ledger.Address(req.To)).Dec()})
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		To     string `json:"to"`
		Amount string `json:"amount"`
	}
	if !decode(w, r, &req) {
		return
	}
	amount, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if err := s.token.Transfer(from, ledger.Address(req.To), amount); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"balance": s.token.BalanceOf(from).Dec()})
}

func (s *Server) handleTransferFrom(w http.ResponseWriter, r *http.Request) {
	spender, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		From   string `json:"from"`
		To     string `json:"to"`
		Amount string `json:"amount"`
	}
	if !decode(w, r, &req) {
		return
	}
	amount, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if err := s.token.TransferFrom(spender, ledger.Address(req.From), ledger.Address(req.To), amount); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"allowance": s.token.Allowance(ledger.Address(req.From), spender).Dec(),
	})
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		Spender string `json:"spender"`
		Amount  string `json:"amount"`
	}
	if !decode(w, r, &req) {
		return
	}
	amount, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if err := s.token.Approve(from, ledger.Address(req.Spender), amount); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"allowance": amount.Dec()})
}

func (s *Server) handleBurn(w http.ResponseWriter, r *http.Request) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		Amount string `json:"amount"`
	}
	if !decode(w, r, &req) {
		return
	}
	amount, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if err := s.token.BurnTokens(from, amount); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"balance": s.token.BalanceOf(from).Dec()})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	addr := ledger.Address(r.URL.Query().Get("address"))
	if addr.IsZero() {
		writeError(w, http.StatusBadRequest, "validation", "missing address parameter")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"balance": s.token.BalanceOf(addr).Dec()})
}

func (s *Server) handleSupply(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"totalSupply": s.token.TotalSupply().Dec()})
}

func (s *Server) handleNFTMint(w http.ResponseWriter, r *http.Request) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		To           string `json:"to"`
		AssetID      uint64 `json:"assetId"`
		AssetType    string `json:"assetType"`
		GovernmentID string `json:"governmentId"`
		TokenURI     string `json:"tokenUri"`
	}
	if !decode(w, r, &req) {
		return
	}

	err := s.nft.MintAsset(from, ledger.Address(req.To), ledger.AssetID(req.AssetID),
		req.AssetType, req.GovernmentID, req.TokenURI)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"assetId": req.AssetID, "owner": req.To})
}

func (s *Server) handleNFTTransfer(w http.ResponseWriter, r *http.Request) {
	from, ok := caller(w, r)
	if !ok {
		return
	}
	var req struct {
		From    string `json:"from"`
		To      string `json:"to"`
		AssetID uint64 `json:"assetId"`
	}
	if !decode(w, r, &req) {
		return
	}

	if err := s.nft.TransferFrom(from, ledger.Address(req.From), ledger.Address(req.To), ledger.AssetID(req.AssetID)); err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"owner": req.To})
}

func (s *Server) handleNFTOwner(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAssetID(w, r.URL.Query().Get("assetId"))
	if !ok {
		return
	}
	owner, err := s.nft.OwnerOf(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	assetType, governmentID, verified, err := s.nft.AssetDetails(id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"owner":        string(owner),
		"assetType":    assetType,
		"governmentId": governmentID,
		"verified":     verified,
	})
}

func (s *Server) handleNFTAssets(w http.ResponseWriter, r *http.Request) {
	owner := ledger.Address(r.URL.Query().Get("owner"))
	if owner.IsZero() {
		writeError(w, http.StatusBadRequest, "validation", "missing owner parameter")
		return
	}
	ids := s.nft.AssetsOf(owner)
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	writeJSON(w, http.StatusOK, map[string]any{"assetIds": out, "count": len(out)})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	if s.feed == nil {
		writeError(w, http.StatusNotFound, "unknown", "activity feed not enabled")
		return
	}

	q := r.URL.Query()
	entries := s.feed.Entries()
	if typ := q.Get("type"); typ != "" {
		entries = s.feed.ByType(ledger.EventType(typ))
	} else if raw := q.Get("assetId"); raw != "" {
		id, ok := parseAssetID(w, raw)
		if !ok {
			return
		}
		entries = s.feed.ByAsset(id)
	} else if actor := q.Get("actor"); actor != "" {
		entries = s.feed.ByActor(ledger.Address(actor))
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "count": len(entries)})
}
