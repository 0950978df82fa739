package report

// verificationQuery selects the latest verification request for a wallet.
// $1 = wallet address, $2 = network id.
const verificationQuery = `
	SELECT
		wvr.wallet_address,
		wvr.req_timestamp,
		wvr.verf_amount
	FROM wallet_verf_req AS wvr
	WHERE wvr.network_id = $2
		AND wvr.wallet_address = $1
	ORDER BY wvr.req_timestamp DESC
	LIMIT 1
`

// transactionQuery selects the network transaction with the given hash.
// $1 = transaction hash, $2 = network id.
const transactionQuery = `
	SELECT
		network_id,
		network_txn_hash,
		from_wallet_address,
		to_wallet_address,
		amount
	FROM public.network_txn
	WHERE network_id = $2
		AND network_txn_hash = $1
	LIMIT 1
`
