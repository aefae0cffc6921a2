package sqlinline

// SQLite statements for slot_records.

const SQLiteCreateSlotRecords = `--sql 6748b9f9-2b4c-4800-bddc-22965469dc06
create table if not exists slot_records (
    id text primary key,
    kind text not null,
    name text not null,
    payload text not null,
    created_at timestamp not null,
    updated_at timestamp not null,
    unique (kind, name)
);
`

const SQLiteSelectSlotRecord = `--sql 62d19933-fa33-4979-80d9-0b809e2ea475
select id, kind, name, payload, created_at, updated_at
from slot_records
where kind = ? and name = ?
limit 1;
`

const SQLiteSelectSlotRecordByID = `--sql 12fd00f1-2370-43ef-8d29-f63462c3a2d2
select id, kind, name, payload, created_at, updated_at
from slot_records
where kind = ? and id = ?
limit 1;
`

const SQLiteInsertSlotRecordIfAbsent = `--sql 0c3591bf-c266-4a25-82c4-19a60751464d
insert or ignore into slot_records (id, kind, name, payload, created_at, updated_at)
values (?, ?, ?, ?, ?, ?);
`

const SQLiteUpsertSlotRecord = `--sql c75eae87-0244-4ff4-8025-81e58929effe
insert into slot_records (id, kind, name, payload, created_at, updated_at)
values (?, ?, ?, ?, ?, ?)
on conflict (kind, name) do update set
    payload = excluded.payload,
    updated_at = excluded.updated_at;
`

const SQLiteListSlotRecords = `--sql 56b330b3-a231-4b1e-a897-fb9bb96a683c
select id, kind, name, payload, created_at, updated_at
from slot_records
where kind = ?
order by rowid asc;
`
