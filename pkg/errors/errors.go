package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ErrBookingConflict 写入时复查发现时段冲突（事务内行锁复查或排它约束触发）
var ErrBookingConflict = errors.New("该时段已被占用，写入被拒绝")

// ErrRowReferenced 记录仍被其他表通过外键引用，删除被拒绝
var ErrRowReferenced = errors.New("记录仍被引用，不能删除")
