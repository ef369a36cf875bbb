package postgres

// Advisory lock hashing
const (
	// HashSeparator joins account and bucket before hashing into a lock key
	HashSeparator = ":"

	// HashMaskPositiveInt64 keeps advisory lock keys positive
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF
)

// PostgreSQL error codes
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// Foreign key constraint names, as generated by the migrations
const (
	constraintInventoryAccount = "inventory_entries_account_id_fkey"
	constraintInventoryItem    = "inventory_entries_item_id_fkey"
	constraintPurchaseAccount  = "purchase_records_account_id_fkey"
	constraintCatchAccount     = "catch_records_account_id_fkey"
	constraintRewardClaimedBy  = "rewards_first_claimed_by_fkey"
)

// itemColumns selects an item joined as "i"
const itemColumns = `i.item_id, i.item_name, i.slug, i.description, i.effect_kind, i.effect_value, i.is_passive, i.is_consumable`

// Account and ledger statements
const (
	SQLEnsureAccount = `
		INSERT INTO accounts (account_id, balance, created_at, updated_at)
		VALUES ($1, 0, NOW(), NOW())
		ON CONFLICT (account_id) DO NOTHING
	`

	SQLGetAccount = `
		SELECT account_id, balance, created_at, updated_at
		FROM accounts
		WHERE account_id = $1
	`

	// SQLDebitIfSufficient only matches while the balance covers the amount
	SQLDebitIfSufficient = `
		UPDATE accounts
		SET balance = balance - $2, updated_at = NOW()
		WHERE account_id = $1 AND balance >= $2
		RETURNING balance
	`

	SQLCreditBalance = `
		UPDATE accounts
		SET balance = balance + $2, updated_at = NOW()
		WHERE account_id = $1
		RETURNING balance
	`

	SQLLockInventoryCount = `
		SELECT count
		FROM inventory_entries
		WHERE account_id = $1 AND item_id = $2
		FOR UPDATE
	`

	SQLAddInventory = `
		INSERT INTO inventory_entries (account_id, item_id, count)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, item_id) DO UPDATE
		SET count = inventory_entries.count + EXCLUDED.count
		RETURNING count
	`

	SQLSetInventoryCount = `
		INSERT INTO inventory_entries (account_id, item_id, count)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, item_id) DO UPDATE
		SET count = EXCLUDED.count
	`

	SQLDeleteInventory = `DELETE FROM inventory_entries WHERE account_id = $1 AND item_id = $2`
)

// Shop and inventory reads
const (
	SQLGetInventory = `
		SELECT ` + itemColumns + `, e.count
		FROM inventory_entries e
		JOIN items i ON i.item_id = e.item_id
		WHERE e.account_id = $1
		ORDER BY i.item_id
	`

	SQLGetItem = `SELECT ` + itemColumns + ` FROM items i WHERE i.item_id = $1`

	SQLGetListings = `
		SELECT l.listing_id, l.cost, ` + itemColumns + `
		FROM shop_listings l
		JOIN items i ON i.item_id = l.item_id
		ORDER BY l.listing_id
	`

	SQLGetListingByID = `
		SELECT l.listing_id, l.cost, ` + itemColumns + `
		FROM shop_listings l
		JOIN items i ON i.item_id = l.item_id
		WHERE l.listing_id = $1
	`

	SQLGetListingBySlug = `
		SELECT l.listing_id, l.cost, ` + itemColumns + `
		FROM shop_listings l
		JOIN items i ON i.item_id = l.item_id
		WHERE i.slug = $1
	`

	SQLInsertPurchaseRecord = `
		INSERT INTO purchase_records (account_id, item_id, listing_id, purchased_at)
		VALUES ($1, $2, $3, $4)
		RETURNING purchase_id
	`

	SQLGetPurchaseHistory = `
		SELECT purchase_id, account_id, item_id, listing_id, purchased_at
		FROM purchase_records
		WHERE account_id = $1
		ORDER BY purchased_at DESC, purchase_id DESC
		LIMIT $2
	`
)

// Reward pool and catch history
const (
	SQLGetRewardsByTier = `
		SELECT reward_id, reward_name, worth, tier, first_claimed_by, first_claimed_at
		FROM rewards
		WHERE tier = $1
		ORDER BY reward_id
	`

	// SQLClaimFirst only matches while the reward is unclaimed
	SQLClaimFirst = `
		UPDATE rewards
		SET first_claimed_by = $2, first_claimed_at = $3
		WHERE reward_id = $1 AND first_claimed_by IS NULL
	`

	SQLRewardExists = `SELECT EXISTS (SELECT 1 FROM rewards WHERE reward_id = $1)`

	SQLInsertCatchRecord = `
		INSERT INTO catch_records (account_id, reward_id, tier, worth, first_claim, bucket, caught_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING catch_id
	`

	SQLGetCatchHistory = `
		SELECT catch_id, account_id, reward_id, tier, worth, first_claim, bucket, caught_at
		FROM catch_records
		WHERE account_id = $1
		ORDER BY caught_at DESC, catch_id DESC
		LIMIT $2
	`
)

// Rate limiting
const (
	// SQLAdvisoryLock acquires a PostgreSQL advisory transaction lock
	SQLAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"

	SQLCountAttemptsSince = `
		SELECT COUNT(*)
		FROM attempt_records
		WHERE account_id = $1 AND bucket = $2 AND attempted_at >= $3
	`

	SQLOldestAttemptSince = `
		SELECT MIN(attempted_at)
		FROM attempt_records
		WHERE account_id = $1 AND bucket = $2 AND attempted_at >= $3
	`

	SQLInsertAttempt = `
		INSERT INTO attempt_records (account_id, bucket, attempted_at)
		VALUES ($1, $2, $3)
	`

	SQLDeleteAttemptsBefore = `DELETE FROM attempt_records WHERE attempted_at < $1`

	SQLRemoveAttempt = `
		DELETE FROM attempt_records
		WHERE attempt_id = (
			SELECT attempt_id FROM attempt_records
			WHERE account_id = $1 AND bucket = $2 AND attempted_at = $3
			LIMIT 1
		)
	`

	SQLEnsureScopeSettings = `
		INSERT INTO scope_settings (scope_key, attempt_limit, window_seconds)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope_key) DO NOTHING
	`

	SQLGetScopeSettings = `
		SELECT scope_key, attempt_limit, window_seconds
		FROM scope_settings
		WHERE scope_key = $1
	`

	SQLUpsertScopeSettings = `
		INSERT INTO scope_settings (scope_key, attempt_limit, window_seconds)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope_key) DO UPDATE
		SET attempt_limit = EXCLUDED.attempt_limit, window_seconds = EXCLUDED.window_seconds
	`
)

// Catalog seeding
const (
	SQLUpsertItem = `
		INSERT INTO items (item_name, slug, description, effect_kind, effect_value, is_passive, is_consumable)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (item_name) DO UPDATE
		SET slug = EXCLUDED.slug,
		    description = EXCLUDED.description,
		    effect_kind = EXCLUDED.effect_kind,
		    effect_value = EXCLUDED.effect_value,
		    is_passive = EXCLUDED.is_passive,
		    is_consumable = EXCLUDED.is_consumable
		RETURNING item_id
	`

	SQLUpsertListing = `
		INSERT INTO shop_listings (item_id, cost)
		VALUES ($1, $2)
		ON CONFLICT (item_id) DO UPDATE SET cost = EXCLUDED.cost
		RETURNING listing_id
	`

	SQLUpsertReward = `
		INSERT INTO rewards (reward_name, worth, tier)
		VALUES ($1, $2, $3)
		ON CONFLICT (reward_name) DO UPDATE
		SET worth = EXCLUDED.worth, tier = EXCLUDED.tier
		RETURNING reward_id
	`
)

// Operation names reported in infrastructure errors
const (
	opBeginTx         = "begin transaction"
	opCommitTx        = "commit transaction"
	opRollbackTx      = "rollback transaction"
	opEnsureAccount   = "ensure account"
	opGetAccount      = "get account"
	opDebit           = "debit balance"
	opCredit          = "credit balance"
	opLockInventory   = "lock inventory"
	opAddInventory    = "add inventory"
	opSetInventory    = "set inventory"
	opGetInventory    = "get inventory"
	opGetItem         = "get item"
	opGetListings     = "get listings"
	opGetListing      = "get listing"
	opInsertPurchases = "insert purchase records"
	opGetPurchases    = "get purchase history"
	opGetRewards      = "get rewards"
	opClaimFirst      = "claim first"
	opInsertCatch     = "insert catch record"
	opGetCatches      = "get catch history"
	opAdvisoryLock    = "acquire advisory lock"
	opCountAttempts   = "count attempts"
	opOldestAttempt   = "oldest attempt"
	opInsertAttempt   = "insert attempt"
	opDeleteAttempts  = "delete attempts"
	opRemoveAttempt   = "remove attempt"
	opEnsureScope     = "ensure scope settings"
	opUpsertScope     = "upsert scope settings"
	opUpsertItem      = "upsert item"
	opUpsertListing   = "upsert listing"
	opUpsertReward    = "upsert reward"
	opPing            = "ping"
)
