package sqlinline

// PostgreSQL statements for slot_records. Every statement starts with an
// audit marker that infra.SQLRunner strips and logs.

const QSelectSlotRecord = `--sql 344a873d-ec4e-4808-85b7-5bb6b97b2b1e
select id::text, kind, name, payload, created_at, updated_at
from slot_records
where kind = $1 and name = $2
limit 1;
`

const QSelectSlotRecordByID = `--sql 8c4a3221-4d87-4b34-a0f5-7d639ed9cb05
select id::text, kind, name, payload, created_at, updated_at
from slot_records
where kind = $1 and id = $2::uuid
limit 1;
`

// The no-op update makes the conflicting row visible to returning even when
// a concurrent insert committed after the statement snapshot.
const QInsertSlotRecordIfAbsent = `--sql da72b3f4-db54-4312-8177-abf6affdc7b2
insert into slot_records (id, kind, name, payload, created_at, updated_at)
values ($1::uuid, $2, $3, $4::jsonb, $5, $6)
on conflict (kind, name) do update set
    updated_at = slot_records.updated_at
returning id::text, kind, name, payload, created_at, updated_at;
`

const QUpsertSlotRecord = `--sql 224b0683-636a-448a-8276-e74dac70ab4a
insert into slot_records (id, kind, name, payload, created_at, updated_at)
values ($1::uuid, $2, $3, $4::jsonb, $5, $6)
on conflict (kind, name) do update set
    payload = excluded.payload,
    updated_at = excluded.updated_at
returning id::text, kind, name, payload, created_at, updated_at;
`

const QListSlotRecords = `--sql 425332fe-92e6-4a93-8f97-763975713a4c
select id::text, kind, name, payload, created_at, updated_at
from slot_records
where kind = $1
order by created_at asc, name asc;
`
