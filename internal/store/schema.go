package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transactions (
    id              TEXT PRIMARY KEY,
    date            TEXT NOT NULL,
    label           TEXT NOT NULL,
    amount          REAL NOT NULL,
    type            TEXT NOT NULL,
    category        TEXT,
    notes           TEXT,
    linked_rule_id  TEXT,
    linked_bill_id  TEXT,
    goal_id         TEXT,
    recorded_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_rule ON transactions(linked_rule_id);
`
