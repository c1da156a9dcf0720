/*
 * @Description: ID 生成和解码服务
 * @Author: 安知鱼
 * @Date: 2026-09-22 20:38:15
 * @LastEditTime: 2026-10-10 22:05:59
 * @LastEditors: 安知鱼
 */
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	mrand "math/rand"
	"sync/atomic"

	"github.com/sqids/sqids-go"
)

// sqidsEncoder 是用于生成和解码短 ID 的 Sqids 编码器实例。
var sqidsEncoder atomic.Pointer[sqids.Sqids]

// DefaultAlphabet 是默认的字母表
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EntityType 定义了不同实体在生成公共 ID 时的类型标识。
const (
	EntityTypeComment uint64 = 1 // 顶级评论的类型标识
	EntityTypeReply   uint64 = 2 // 回复的类型标识
)

// ErrEncoderNotReady 编码器未初始化
var ErrEncoderNotReady = errors.New("Sqids 编码器未初始化")

func init() {
	// 默认字母表总是可用，启动时可以用种子重新初始化
	if err := InitSqidsEncoder(); err != nil {
		panic(err)
	}
}

// GenerateRandomSeed 生成一个随机的 16 字节种子（返回 32 字符的十六进制字符串）
func GenerateRandomSeed() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("生成随机种子失败: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// shuffleAlphabet 使用种子打乱字母表
func shuffleAlphabet(seed string) string {
	var seedInt int64
	for i, c := range seed {
		seedInt += int64(c) * int64(i+1)
	}

	r := mrand.New(mrand.NewSource(seedInt))

	alphabet := []rune(DefaultAlphabet)
	r.Shuffle(len(alphabet), func(i, j int) {
		alphabet[i], alphabet[j] = alphabet[j], alphabet[i]
	})

	return string(alphabet)
}

// InitSqidsEncoder 使用默认字母表初始化 Sqids 编码器
func InitSqidsEncoder() error {
	return InitSqidsEncoderWithSeed("")
}

// InitSqidsEncoderWithSeed 使用种子初始化 Sqids 编码器。
// 如果 seed 为空字符串，则使用默认字母表
func InitSqidsEncoderWithSeed(seed string) error {
	alphabet := DefaultAlphabet
	if seed != "" {
		alphabet = shuffleAlphabet(seed)
	}

	s, err := sqids.New(
		sqids.Options{
			MinLength: 4,
			Alphabet:  alphabet,
		},
	)
	if err != nil {
		return fmt.Errorf("初始化 Sqids 编码器失败: %w", err)
	}
	sqidsEncoder.Store(s)
	return nil
}

// GeneratePublicID 把序号与实体类型编码为公共 ID
func GeneratePublicID(seq uint64, entityType uint64) (string, error) {
	enc := sqidsEncoder.Load()
	if enc == nil {
		return "", ErrEncoderNotReady
	}

	id, err := enc.Encode([]uint64{seq, entityType})
	if err != nil {
		return "", fmt.Errorf("编码公共ID失败: %w", err)
	}
	return id, nil
}

// DecodePublicID 解码公共 ID
func DecodePublicID(publicID string) (seq uint64, entityType uint64, err error) {
	enc := sqidsEncoder.Load()
	if enc == nil {
		return 0, 0, ErrEncoderNotReady
	}

	numbers := enc.Decode(publicID)
	if len(numbers) != 2 {
		return 0, 0, fmt.Errorf("无法从公共ID解码出预期数量的数字(期望2个，得到%d个)", len(numbers))
	}
	return numbers[0], numbers[1], nil
}
