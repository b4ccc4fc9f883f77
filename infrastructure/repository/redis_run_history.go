package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andresaguirresm-cpu/reportes-web/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	runHistoryKeyPrefix = "run_history:"
	runHistoryIndexKey  = "run_history_campaigns"
	runHistorySeqKey    = "run_history_seq"
	redisOpTimeout      = 5 * time.Second
)

// redisRunHistoryRepository guarda os snapshots de cada campanha em uma lista,
// do mais recente para o mais antigo
type redisRunHistoryRepository struct {
	client redis.UniversalClient
}

func NewRedisRunHistoryRepository(client redis.UniversalClient) RunHistoryRepository {
	return &redisRunHistoryRepository{
		client: client,
	}
}

func runHistoryKey(campaignID string) string {
	return runHistoryKeyPrefix + campaignID
}

func (r *redisRunHistoryRepository) GetLatestByCampaign(campaignID string, minSchemaVersion int) (*domain.HistorySnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	entries, err := r.client.LRange(ctx, runHistoryKey(campaignID), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar histórico da campanha %s: %w", campaignID, err)
	}

	for _, entry := range entries {
		var snapshot domain.HistorySnapshot
		if err := json.Unmarshal([]byte(entry), &snapshot); err != nil {
			return nil, fmt.Errorf("erro ao ler histórico da campanha %s: %w", campaignID, err)
		}
		if snapshot.SchemaVersion >= minSchemaVersion {
			return &snapshot, nil
		}
	}

	return nil, nil
}

func (r *redisRunHistoryRepository) Save(snapshot *domain.HistorySnapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}

	key := runHistoryKey(snapshot.CampaignID)

	id, err := r.client.Incr(ctx, runHistorySeqKey).Result()
	if err != nil {
		return fmt.Errorf("erro ao gerar id do histórico: %w", err)
	}
	snapshot.ID = id

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("erro ao serializar histórico: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, payload)
		pipe.SAdd(ctx, runHistoryIndexKey, snapshot.CampaignID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("erro ao salvar histórico da execução %s: %w", snapshot.RunID, err)
	}

	return nil
}

func (r *redisRunHistoryRepository) DeleteLegacyOlderThan(before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	campaigns, err := r.client.SMembers(ctx, runHistoryIndexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("erro ao listar campanhas do histórico: %w", err)
	}

	var removed int64
	for _, campaignID := range campaigns {
		key := runHistoryKey(campaignID)

		entries, err := r.client.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return removed, fmt.Errorf("erro ao buscar histórico da campanha %s: %w", campaignID, err)
		}

		for _, entry := range entries {
			var snapshot domain.HistorySnapshot
			if err := json.Unmarshal([]byte(entry), &snapshot); err != nil {
				continue
			}
			if snapshot.SchemaVersion >= domain.MinComparableSchemaVersion || !snapshot.CreatedAt.Before(before) {
				continue
			}

			n, err := r.client.LRem(ctx, key, 1, entry).Result()
			if err != nil {
				return removed, fmt.Errorf("erro ao remover histórico legado: %w", err)
			}
			removed += n
		}
	}

	return removed, nil
}
