package ledger

import (
	"strconv"

	"github.com/MKhiriev/invisible-wallet/models"
)

// Wire shapes of the Horizon REST API, limited to the fields read here.

type horizonAsset struct {
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code,omitempty"`
	AssetIssuer string `json:"asset_issuer,omitempty"`
}

func (a horizonAsset) toModel() models.Asset {
	if a.AssetType == "native" {
		return models.NativeAsset()
	}
	return models.Asset{Code: a.AssetCode, Issuer: a.AssetIssuer}
}

type horizonBalance struct {
	horizonAsset
	Balance string `json:"balance"`
	Limit   string `json:"limit,omitempty"`
}

type horizonAccount struct {
	AccountID string           `json:"account_id"`
	Sequence  string           `json:"sequence"`
	Balances  []horizonBalance `json:"balances"`
}

func (a horizonAccount) toModel() (models.AccountSnapshot, error) {
	seq, err := strconv.ParseInt(a.Sequence, 10, 64)
	if err != nil {
		return models.AccountSnapshot{}, err
	}

	balances := make([]models.Balance, 0, len(a.Balances))
	for _, b := range a.Balances {
		// liquidity pool shares are not assets a wallet can send
		if b.AssetType == "liquidity_pool_shares" {
			continue
		}
		balances = append(balances, models.Balance{
			Asset:   b.toModel(),
			Balance: b.Balance,
			Limit:   b.Limit,
		})
	}

	return models.AccountSnapshot{
		AccountID: a.AccountID,
		Sequence:  seq,
		Balances:  balances,
	}, nil
}

type horizonFeeStats struct {
	LastLedgerBaseFee string `json:"last_ledger_base_fee"`
}

type horizonPath struct {
	SourceAssetType        string         `json:"source_asset_type"`
	SourceAssetCode        string         `json:"source_asset_code,omitempty"`
	SourceAssetIssuer      string         `json:"source_asset_issuer,omitempty"`
	SourceAmount           string         `json:"source_amount"`
	DestinationAssetType   string         `json:"destination_asset_type"`
	DestinationAssetCode   string         `json:"destination_asset_code,omitempty"`
	DestinationAssetIssuer string         `json:"destination_asset_issuer,omitempty"`
	DestinationAmount      string         `json:"destination_amount"`
	Path                   []horizonAsset `json:"path"`
}

func (p horizonPath) toModel() models.PathRecord {
	path := make([]models.Asset, 0, len(p.Path))
	for _, a := range p.Path {
		path = append(path, a.toModel())
	}

	return models.PathRecord{
		SourceAsset:       horizonAsset{p.SourceAssetType, p.SourceAssetCode, p.SourceAssetIssuer}.toModel(),
		SourceAmount:      p.SourceAmount,
		DestinationAsset:  horizonAsset{p.DestinationAssetType, p.DestinationAssetCode, p.DestinationAssetIssuer}.toModel(),
		DestinationAmount: p.DestinationAmount,
		Path:              path,
	}
}

type horizonPathPage struct {
	Embedded struct {
		Records []horizonPath `json:"records"`
	} `json:"_embedded"`
}

type horizonOrderBook struct {
	Bids []models.OrderBookEntry `json:"bids"`
	Asks []models.OrderBookEntry `json:"asks"`
}

type horizonSubmitResult struct {
	Hash   string `json:"hash"`
	Ledger int64  `json:"ledger"`
}

type horizonProblem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Extras struct {
		ResultCodes struct {
			Transaction string   `json:"transaction"`
			Operations  []string `json:"operations"`
		} `json:"result_codes"`
	} `json:"extras"`
}
